package memberdb

import (
	"encoding/json"
	"fmt"
	"net/mail"
	"time"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/memberbus"
	"github.com/negocio360/platform/business/types/memberstatus"
	"github.com/negocio360/platform/business/types/role"
)

type memberDB struct {
	ID           uuid.UUID `db:"member_id"`
	TenantID     uuid.UUID `db:"tenant_id"`
	UserID       uuid.UUID `db:"user_id"`
	Email        string    `db:"email"`
	Role         string    `db:"role"`
	Capabilities []byte    `db:"capabilities"`
	Status       string    `db:"status"`
	InvitedBy    uuid.UUID `db:"invited_by"`
	InvitedAt    time.Time `db:"invited_at"`
	JoinedAt     time.Time `db:"joined_at"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

func toDBMember(bus memberbus.Member) (memberDB, error) {
	caps := make(map[string]bool, len(bus.Capabilities))
	for c, granted := range bus.Capabilities {
		caps[c.String()] = granted
	}

	capsJSON, err := json.Marshal(caps)
	if err != nil {
		return memberDB{}, fmt.Errorf("marshal capabilities: %w", err)
	}

	return memberDB{
		ID:           bus.ID,
		TenantID:     bus.TenantID,
		UserID:       bus.UserID,
		Email:        bus.Email.Address,
		Role:         bus.Role.String(),
		Capabilities: capsJSON,
		Status:       bus.Status.String(),
		InvitedBy:    bus.InvitedBy,
		InvitedAt:    bus.InvitedAt.UTC(),
		JoinedAt:     bus.JoinedAt.UTC(),
		CreatedAt:    bus.CreatedAt.UTC(),
		UpdatedAt:    bus.UpdatedAt.UTC(),
	}, nil
}

func toBusMember(db memberDB) (memberbus.Member, error) {
	mbrRole, err := role.Parse(db.Role)
	if err != nil {
		return memberbus.Member{}, fmt.Errorf("parse role: %w", err)
	}

	status, err := memberstatus.Parse(db.Status)
	if err != nil {
		return memberbus.Member{}, fmt.Errorf("parse status: %w", err)
	}

	var rawCaps map[string]bool
	if len(db.Capabilities) > 0 {
		if err := json.Unmarshal(db.Capabilities, &rawCaps); err != nil {
			return memberbus.Member{}, fmt.Errorf("unmarshal capabilities: %w", err)
		}
	}

	caps := make(memberbus.CapabilitySet, len(rawCaps))
	for value, granted := range rawCaps {
		c, err := memberbus.ParseCapability(value)
		if err != nil {
			return memberbus.Member{}, fmt.Errorf("parse capability: %w", err)
		}
		caps[c] = granted
	}

	bus := memberbus.Member{
		ID:           db.ID,
		TenantID:     db.TenantID,
		UserID:       db.UserID,
		Email:        mail.Address{Address: db.Email},
		Role:         mbrRole,
		Capabilities: caps,
		Status:       status,
		InvitedBy:    db.InvitedBy,
		InvitedAt:    db.InvitedAt.In(time.Local),
		JoinedAt:     db.JoinedAt.In(time.Local),
		CreatedAt:    db.CreatedAt.In(time.Local),
		UpdatedAt:    db.UpdatedAt.In(time.Local),
	}

	return bus, nil
}

func toBusMembers(dbs []memberDB) ([]memberbus.Member, error) {
	bus := make([]memberbus.Member, len(dbs))

	for i, db := range dbs {
		var err error
		bus[i], err = toBusMember(db)
		if err != nil {
			return nil, err
		}
	}

	return bus, nil
}
