package subscriptionbus_test

import (
	"context"
	"errors"
	"io"
	"testing"

	"github.com/google/uuid"
	"github.com/negocio360/platform/business/domain/planbus"
	"github.com/negocio360/platform/business/domain/subscriptionbus"
	"github.com/negocio360/platform/business/sdk/sqldb"
	"github.com/negocio360/platform/business/types/feature"
	"github.com/negocio360/platform/business/types/substatus"
	"github.com/negocio360/platform/foundation/logger"
)

func newTestCore(t *testing.T) (*subscriptionbus.Core, *fakeStore) {
	t.Helper()

	log := logger.New(io.Discard, logger.LevelInfo, "TEST", nil)
	store := &fakeStore{}

	return subscriptionbus.NewCore(log, store), store
}

func advancedPlan(trialDays int) planbus.Plan {
	return planbus.Plan{
		ID:        uuid.New(),
		Name:      "Avançado",
		Slug:      planbus.SlugAdvanced,
		TrialDays: trialDays,
	}
}

func TestCreateWithTrial(t *testing.T) {
	core, _ := newTestCore(t)

	sub, err := core.Create(context.Background(), uuid.New(), advancedPlan(14), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !sub.Status.Equal(substatus.Trial) {
		t.Errorf("expected trial status, got %s", sub.Status)
	}
	if sub.TrialEndsAt.IsZero() {
		t.Error("expected trial end date to be set")
	}
	if sub.PlanSlug != planbus.SlugAdvanced {
		t.Errorf("expected plan slug %q, got %q", planbus.SlugAdvanced, sub.PlanSlug)
	}
}

func TestCreateWithoutConfirmation(t *testing.T) {
	core, _ := newTestCore(t)

	sub, err := core.Create(context.Background(), uuid.New(), advancedPlan(0), "")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !sub.Status.Equal(substatus.Pending) {
		t.Errorf("expected pending status, got %s", sub.Status)
	}
}

func TestCreateWithConfirmation(t *testing.T) {
	core, _ := newTestCore(t)

	sub, err := core.Create(context.Background(), uuid.New(), advancedPlan(0), "gw-confirmation-token")
	if err != nil {
		t.Fatalf("Create: %v", err)
	}

	if !sub.Status.Equal(substatus.Active) {
		t.Errorf("expected active status, got %s", sub.Status)
	}
}

func TestCreateAlreadyEntitled(t *testing.T) {
	core, store := newTestCore(t)

	tenantID := uuid.New()
	store.subs = append(store.subs, subscriptionbus.Subscription{
		ID:       uuid.New(),
		TenantID: tenantID,
		Status:   substatus.Active,
	})

	if _, err := core.Create(context.Background(), tenantID, advancedPlan(0), ""); !errors.Is(err, subscriptionbus.ErrAlreadyActive) {
		t.Fatalf("expected ErrAlreadyActive, got %v", err)
	}
}

func TestCreateAfterCancelled(t *testing.T) {
	core, store := newTestCore(t)

	tenantID := uuid.New()
	store.subs = append(store.subs, subscriptionbus.Subscription{
		ID:       uuid.New(),
		TenantID: tenantID,
		Status:   substatus.Cancelled,
	})

	if _, err := core.Create(context.Background(), tenantID, advancedPlan(0), "token"); err != nil {
		t.Fatalf("Create after cancellation: %v", err)
	}
}

func TestCancel(t *testing.T) {
	tests := []struct {
		name    string
		status  substatus.Status
		wantErr error
	}{
		{"active cancels", substatus.Active, nil},
		{"trial cancels", substatus.Trial, nil},
		{"pending cancels", substatus.Pending, nil},
		{"cancelled is terminal", substatus.Cancelled, subscriptionbus.ErrNotCancelable},
		{"expired is terminal", substatus.Expired, subscriptionbus.ErrNotCancelable},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			core, store := newTestCore(t)

			sub := subscriptionbus.Subscription{
				ID:       uuid.New(),
				TenantID: uuid.New(),
				Status:   tt.status,
			}
			store.subs = append(store.subs, sub)

			got, err := core.Cancel(context.Background(), sub)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("expected %v, got %v", tt.wantErr, err)
				}
				return
			}

			if err != nil {
				t.Fatalf("Cancel: %v", err)
			}
			if !got.Status.Equal(substatus.Cancelled) {
				t.Errorf("expected cancelled status, got %s", got.Status)
			}
			if got.CancelledAt.IsZero() {
				t.Error("expected cancellation timestamp to be set")
			}
		})
	}
}

func TestIsFeatureEnabled(t *testing.T) {
	tests := []struct {
		name   string
		status substatus.Status
		slug   string
		f      feature.Feature
		want   bool
	}{
		{"active advanced unlocks custom domain", substatus.Active, planbus.SlugAdvanced, feature.CustomDomain, true},
		{"trial advanced unlocks custom domain", substatus.Trial, planbus.SlugAdvanced, feature.CustomDomain, true},
		{"active advanced unlocks white label", substatus.Active, planbus.SlugAdvanced, feature.WhiteLabel, true},
		{"active advanced unlocks api access", substatus.Active, planbus.SlugAdvanced, feature.APIAccess, true},
		{"pending advanced is locked", substatus.Pending, planbus.SlugAdvanced, feature.CustomDomain, false},
		{"cancelled advanced is locked", substatus.Cancelled, planbus.SlugAdvanced, feature.CustomDomain, false},
		{"expired advanced is locked", substatus.Expired, planbus.SlugAdvanced, feature.CustomDomain, false},
		{"active basic is locked", substatus.Active, "basico", feature.CustomDomain, false},
		{"trial basic is locked", substatus.Trial, "basico", feature.WhiteLabel, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sub := subscriptionbus.Subscription{
				Status:   tt.status,
				PlanSlug: tt.slug,
			}

			if got := subscriptionbus.IsFeatureEnabled(sub, tt.f); got != tt.want {
				t.Errorf("IsFeatureEnabled(%s/%s, %s) = %v, want %v", tt.status, tt.slug, tt.f, got, tt.want)
			}
		})
	}
}

func TestIsFeatureEnabledZeroSubscription(t *testing.T) {
	if subscriptionbus.IsFeatureEnabled(subscriptionbus.Subscription{}, feature.CustomDomain) {
		t.Error("expected zero subscription to disable every feature")
	}
}

// =============================================================================

type fakeStore struct {
	subs []subscriptionbus.Subscription
}

func (s *fakeStore) NewWithTx(tx sqldb.CommitRollbacker) (subscriptionbus.Storer, error) {
	return s, nil
}

func (s *fakeStore) Create(ctx context.Context, sub subscriptionbus.Subscription) error {
	s.subs = append(s.subs, sub)
	return nil
}

func (s *fakeStore) Update(ctx context.Context, sub subscriptionbus.Subscription) error {
	for i, existing := range s.subs {
		if existing.ID == sub.ID {
			s.subs[i] = sub
			return nil
		}
	}
	return subscriptionbus.ErrNotFound
}

func (s *fakeStore) QueryByID(ctx context.Context, subID uuid.UUID) (subscriptionbus.Subscription, error) {
	for _, sub := range s.subs {
		if sub.ID == subID {
			return sub, nil
		}
	}
	return subscriptionbus.Subscription{}, subscriptionbus.ErrNotFound
}

func (s *fakeStore) QueryCurrent(ctx context.Context, tenantID uuid.UUID) (subscriptionbus.Subscription, error) {
	for i := len(s.subs) - 1; i >= 0; i-- {
		if s.subs[i].TenantID == tenantID {
			return s.subs[i], nil
		}
	}
	return subscriptionbus.Subscription{}, subscriptionbus.ErrNotFound
}
