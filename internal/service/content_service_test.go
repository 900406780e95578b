package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gladgrade/gladgrade-server/internal/dto"
	"github.com/gladgrade/gladgrade-server/internal/repository"
	"github.com/gladgrade/gladgrade-server/pkg/apperror"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newContentService(db *gorm.DB) ContentService {
	return NewContentService(repository.NewContentRepository(db))
}

func TestContentService_FAQSanitized(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newContentService(db)

	faq, err := svc.CreateFAQ(ctx, dto.CreateFAQRequest{
		Question: "Is markup allowed?",
		Answer:   `<p>Yes, <b>some</b>.</p><script>alert(1)</script>`,
	})
	require.NoError(t, err)
	assert.Contains(t, faq.Answer, "<b>some</b>")
	assert.NotContains(t, faq.Answer, "<script>")
}

func TestContentService_AdScheduleValidation(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newContentService(db)

	_, err := svc.CreateAd(ctx, dto.CreateAdRequest{
		Title:     "Spring Sale",
		ImageURL:  "https://cdn.example.com/ad.png",
		Placement: "home",
		StartsAt:  strPtr("not-a-timestamp"),
	})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	starts := time.Now().Add(time.Hour).Format(time.RFC3339)
	ends := time.Now().Format(time.RFC3339)
	_, err = svc.CreateAd(ctx, dto.CreateAdRequest{
		Title:     "Spring Sale",
		ImageURL:  "https://cdn.example.com/ad.png",
		Placement: "home",
		StartsAt:  &starts,
		EndsAt:    &ends,
	})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))
}

func TestContentService_AdReschedule(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newContentService(db)

	starts := time.Now().Add(time.Hour).Format(time.RFC3339)
	ends := time.Now().Add(2 * time.Hour).Format(time.RFC3339)
	ad, err := svc.CreateAd(ctx, dto.CreateAdRequest{
		Title:     "Launch",
		ImageURL:  "https://cdn.example.com/launch.png",
		Placement: "home",
		StartsAt:  &starts,
		EndsAt:    &ends,
	})
	require.NoError(t, err)

	// moving the end before the existing start is rejected
	before := time.Now().Format(time.RFC3339)
	_, err = svc.UpdateAd(ctx, ad.ID, dto.UpdateAdRequest{EndsAt: &before})
	assert.True(t, errors.Is(err, apperror.ErrBadRequest))

	// extending the window persists
	later := time.Now().Add(4 * time.Hour).Format(time.RFC3339)
	updated, err := svc.UpdateAd(ctx, ad.ID, dto.UpdateAdRequest{EndsAt: &later})
	require.NoError(t, err)
	require.NotNil(t, updated.EndsAt)
	want, _ := time.Parse(time.RFC3339, later)
	assert.WithinDuration(t, want, *updated.EndsAt, time.Second)

	// clearing both bounds leaves the ad unscheduled
	empty := ""
	updated, err = svc.UpdateAd(ctx, ad.ID, dto.UpdateAdRequest{StartsAt: &empty, EndsAt: &empty})
	require.NoError(t, err)
	assert.Nil(t, updated.StartsAt)
	assert.Nil(t, updated.EndsAt)
}

func TestContentService_ActiveAdsWindow(t *testing.T) {
	db := setupTestDB(t)
	ctx := context.Background()
	svc := newContentService(db)

	running := time.Now().Add(-time.Hour).Format(time.RFC3339)
	stillOn := time.Now().Add(time.Hour).Format(time.RFC3339)
	expiredStart := time.Now().Add(-2 * time.Hour).Format(time.RFC3339)
	expiredEnd := time.Now().Add(-time.Hour).Format(time.RFC3339)

	current, err := svc.CreateAd(ctx, dto.CreateAdRequest{
		Title: "Current", ImageURL: "https://cdn.example.com/a.png", Placement: "home",
		StartsAt: &running, EndsAt: &stillOn,
	})
	require.NoError(t, err)

	_, err = svc.CreateAd(ctx, dto.CreateAdRequest{
		Title: "Expired", ImageURL: "https://cdn.example.com/b.png", Placement: "home",
		StartsAt: &expiredStart, EndsAt: &expiredEnd,
	})
	require.NoError(t, err)

	_, err = svc.CreateAd(ctx, dto.CreateAdRequest{
		Title: "Elsewhere", ImageURL: "https://cdn.example.com/c.png", Placement: "sidebar",
	})
	require.NoError(t, err)

	ads, err := svc.ActiveAds(ctx, "home")
	require.NoError(t, err)
	require.Len(t, ads, 1)
	assert.Equal(t, current.ID, ads[0].ID)
}
