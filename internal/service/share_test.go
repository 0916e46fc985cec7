package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/spf13/viper"

	"github.com/inkpress/blog-service/internal/apperror"
	"github.com/inkpress/blog-service/internal/model"
)

func TestShareService_Record(t *testing.T) {
	viper.Set("app.origin", "https://blog.example.com/")
	defer viper.Set("app.origin", "")

	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)
	reader := testUser(model.RoleUser)
	post := seedPost(t, services, writer)

	share, err := services.Share.Record(ctx, &reader, post.Slug, model.ShareTwitter)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if share.URL != "https://blog.example.com/posts/"+post.Slug {
		t.Errorf("Unexpected share URL %q", share.URL)
	}
	if share.Totals.Total != 1 || share.Totals.PerPlatform[model.ShareTwitter] != 1 {
		t.Errorf("Expected 1 twitter share, got %+v", share.Totals)
	}

	// Anonymous shares count too.
	share, err = services.Share.Record(ctx, nil, post.ID.String(), model.ShareCopyLink)
	if err != nil {
		t.Fatalf("Record failed: %v", err)
	}
	if share.Totals.Total != 2 || share.Totals.PerPlatform[model.ShareCopyLink] != 1 {
		t.Errorf("Expected 2 shares with 1 copy_link, got %+v", share.Totals)
	}
}

func TestShareService_Record_Validation(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)
	post := seedPost(t, services, writer)

	if _, err := services.Share.Record(ctx, nil, post.Slug, "carrier-pigeon"); !errors.Is(err, apperror.ErrValidation) {
		t.Errorf("Expected validation error for bogus platform, got %v", err)
	}

	if _, err := services.Share.Record(ctx, nil, "missing-post", model.ShareTwitter); !errors.Is(err, apperror.ErrNotFound) {
		t.Errorf("Expected not-found for unknown post, got %v", err)
	}
}

func TestShareService_Totals(t *testing.T) {
	services, _ := newTestService()
	ctx := context.Background()
	writer := testUser(model.RoleWriter)
	post := seedPost(t, services, writer)

	for _, platform := range []model.SharePlatform{model.ShareFacebook, model.ShareFacebook, model.ShareWhatsApp} {
		if _, err := services.Share.Record(ctx, nil, post.Slug, platform); err != nil {
			t.Fatalf("Record failed: %v", err)
		}
	}

	totals, err := services.Share.Totals(ctx, post.Slug)
	if err != nil {
		t.Fatalf("Totals failed: %v", err)
	}
	if totals.Total != 3 {
		t.Errorf("Expected 3 shares, got %d", totals.Total)
	}
	if totals.PerPlatform[model.ShareFacebook] != 2 || totals.PerPlatform[model.ShareWhatsApp] != 1 {
		t.Errorf("Unexpected per-platform totals %+v", totals.PerPlatform)
	}
}
