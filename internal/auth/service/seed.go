package service

import (
	"context"
	"fmt"
)

// SeedPassword is the shared password of the built-in test accounts.
const SeedPassword = "123456789"

// SeedEmail returns the login email of the test account with the given id.
func SeedEmail(id string) string {
	return fmt.Sprintf("test%s@gmail.com", id)
}

// SeedTestAccounts makes sure every test identity has an account. Accounts
// are handled one at a time; existing ones are left untouched, so running
// it again performs no writes.
func (s *UserService) SeedTestAccounts(ctx context.Context) error {
	for _, id := range TestIdentities {
		existing, err := s.repo.GetByID(ctx, id)
		if err != nil {
			return fmt.Errorf("failed to look up test account %s: %w", id, err)
		}
		if existing != nil {
			continue
		}

		user, _, err := s.newUser(id, SeedEmail(id), SeedPassword)
		if err != nil {
			return fmt.Errorf("failed to prepare test account %s: %w", id, err)
		}

		if err := s.repo.Create(ctx, user); err != nil {
			return fmt.Errorf("failed to create test account %s: %w", id, err)
		}

		s.logger.Info("test account created", "user_id", id, "email", user.Email)
	}

	return nil
}
