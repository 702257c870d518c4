package auth

import (
	"errors"
	"testing"
	"time"

	"inventory.GO/model/modeltest"
)

func TestAuthRepository_Lifecycle(t *testing.T) {
	repo := NewAuthRepository(modeltest.OpenDB(t))

	tok, err := repo.Create("ci", "s3cret")
	if err != nil {
		t.Fatal(err)
	}
	if tok.TokenHash == "s3cret" || tok.TokenHash != HashToken("s3cret") {
		t.Fatalf("token stored unhashed: %q", tok.TokenHash)
	}

	found, err := repo.FindActiveToken("s3cret")
	if err != nil || found.ID != tok.ID {
		t.Fatalf("FindActiveToken = %v, %v", found, err)
	}
	if _, err := repo.FindActiveToken("other"); !errors.Is(err, ErrNotFound) {
		t.Errorf("unknown token err = %v, want ErrNotFound", err)
	}

	if err := repo.Touch(tok.ID, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatal(err)
	}
	if err := repo.Revoke(tok.ID); err != nil {
		t.Fatal(err)
	}
	if err := repo.Revoke(tok.ID); !errors.Is(err, ErrNotFound) {
		t.Errorf("second revoke err = %v, want ErrNotFound", err)
	}
	if _, err := repo.FindActiveToken("s3cret"); !errors.Is(err, ErrNotFound) {
		t.Errorf("revoked token err = %v, want ErrNotFound", err)
	}

	list, err := repo.List()
	if err != nil || len(list) != 1 || !list[0].Revoked || list[0].LastUsedAt == nil {
		t.Errorf("List = %+v, %v", list, err)
	}
}
