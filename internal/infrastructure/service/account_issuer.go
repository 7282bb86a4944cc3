// Package service holds infrastructure-side implementations of the
// application layer's outbound ports.
package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/intern-hub/intern-placement-hub/internal/application/command"
)

// credentialAlphabet excludes look-alike characters (0/O, 1/l/I) since the
// credential is read off a notification and typed once.
const credentialAlphabet = "abcdefghjkmnpqrstuvwxyzABCDEFGHJKMNPQRSTUVWXYZ23456789"

const credentialLength = 12

// LocalAccountIssuer implements command.AccountIssuer against a local
// account store. The temporary credential is returned in plaintext exactly
// once; only the bcrypt hash is kept.
type LocalAccountIssuer struct {
	mu       sync.Mutex
	accounts map[string]issuedRecord
}

type issuedRecord struct {
	email          string
	role           string
	credentialHash []byte
}

// NewLocalAccountIssuer creates the issuer.
func NewLocalAccountIssuer() *LocalAccountIssuer {
	return &LocalAccountIssuer{accounts: make(map[string]issuedRecord)}
}

// CreateAccount issues a new login account for the given email.
func (s *LocalAccountIssuer) CreateAccount(ctx context.Context, email, role string) (*command.IssuedAccount, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	email = strings.TrimSpace(strings.ToLower(email))
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("account issuer: invalid email %q", email)
	}

	credential, err := generateCredential()
	if err != nil {
		return nil, fmt.Errorf("account issuer: generate credential: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(credential), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("account issuer: hash credential: %w", err)
	}

	accountID := uuid.New().String()

	s.mu.Lock()
	s.accounts[accountID] = issuedRecord{email: email, role: role, credentialHash: hash}
	s.mu.Unlock()

	return &command.IssuedAccount{
		AccountID:           accountID,
		TemporaryCredential: credential,
	}, nil
}

// VerifyCredential checks a credential against the stored hash, for the
// first-login flow.
func (s *LocalAccountIssuer) VerifyCredential(accountID, credential string) bool {
	s.mu.Lock()
	record, ok := s.accounts[accountID]
	s.mu.Unlock()
	if !ok {
		return false
	}
	return bcrypt.CompareHashAndPassword(record.credentialHash, []byte(credential)) == nil
}

func generateCredential() (string, error) {
	buf := make([]byte, credentialLength)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	out := make([]byte, credentialLength)
	for i, b := range buf {
		out[i] = credentialAlphabet[int(b)%len(credentialAlphabet)]
	}
	return string(out), nil
}
