package usecase

import "context"

// LoginProfile is the identity returned by the OAuth provider after exchange.
type LoginProfile struct {
	GoogleID    string
	Email       string
	DisplayName string
}

// ResolveLogin finds or creates the account for a completed OAuth login.
// The admin flag is a creation-time policy: it is set once by exact-match
// comparison against the configured operator email and never mutated after.
type ResolveLogin struct {
	users         UserRepo
	operatorEmail string
}

func NewResolveLogin(users UserRepo, operatorEmail string) *ResolveLogin {
	return &ResolveLogin{users: users, operatorEmail: operatorEmail}
}

func (uc *ResolveLogin) Execute(ctx context.Context, p LoginProfile) (*UserRecord, error) {
	u, err := uc.users.FindByGoogleID(ctx, p.GoogleID)
	if err != nil {
		return nil, err
	}
	if u != nil {
		return u, nil
	}

	u = &UserRecord{
		GoogleID:    p.GoogleID,
		DisplayName: p.DisplayName,
		Email:       p.Email,
		IsAdmin:     p.Email == uc.operatorEmail,
	}
	if err := uc.users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}
