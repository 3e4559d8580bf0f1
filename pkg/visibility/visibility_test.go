package visibility

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/minjaepark/commerce-backend/pkg/db/models"
	pkgerrors "github.com/minjaepark/commerce-backend/pkg/errors"
)

func TestEnsureProductOrderable(t *testing.T) {
	if err := EnsureProductOrderable(&models.Product{ID: uuid.New(), Stock: 3}); err != nil {
		t.Fatalf("live product should be orderable, got %v", err)
	}

	now := time.Now()
	deleted := &models.Product{ID: uuid.New(), DeletedAt: &now}
	err := EnsureProductOrderable(deleted)
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("deleted product should yield NOT_FOUND, got %v", err)
	}

	if err := EnsureProductOrderable(nil); pkgerrors.As(err) == nil {
		t.Fatalf("nil product should yield typed error")
	}
}

func TestEnsureBrandLive(t *testing.T) {
	if err := EnsureBrandLive(&models.Brand{ID: uuid.New(), Name: "acme"}); err != nil {
		t.Fatalf("live brand should pass, got %v", err)
	}

	now := time.Now()
	err := EnsureBrandLive(&models.Brand{ID: uuid.New(), Name: "gone", DeletedAt: &now})
	if typed := pkgerrors.As(err); typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("deleted brand should yield NOT_FOUND, got %v", err)
	}
}
