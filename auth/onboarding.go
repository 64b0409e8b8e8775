package auth

import (
	"context"
	"encoding/json"
	"log"

	"newsdesk/webclient/models"
	"newsdesk/webclient/storage"
)

const onboardingKey = "onboarding"

// SaveOnboardingDraft stores the profile answers captured before the
// user has an account. Best-effort.
func SaveOnboardingDraft(durable storage.Store, p models.Profile) {
	raw, err := json.Marshal(p)
	if err != nil {
		return
	}
	_ = durable.Set(onboardingKey, string(raw))
}

// LoadOnboardingDraft returns the stored draft, if any. A corrupt draft
// reads as absent.
func LoadOnboardingDraft(durable storage.Store) (models.Profile, bool) {
	raw, ok := durable.Get(onboardingKey)
	if !ok {
		return models.Profile{}, false
	}
	var p models.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return models.Profile{}, false
	}
	return p, true
}

// flushOnboarding pushes a pre-login draft to the profile endpoint. The
// draft is only cleared once the server accepted it, so a failed push
// retries on the next login.
func (m *Manager) flushOnboarding(ctx context.Context) {
	draft, ok := LoadOnboardingDraft(m.durable)
	if !ok {
		return
	}
	if err := m.api.SaveProfile(ctx, draft); err != nil {
		log.Printf("auth: flush onboarding draft: %v", err)
		return
	}
	_ = m.durable.Delete(onboardingKey)
}
