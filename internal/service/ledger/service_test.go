package ledger

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sahilk27/wattwise/internal/domain/models"
)

// fakeConsumptionRepo keeps records in memory keyed by (username, date),
// mirroring the single-document-per-day storage contract.
type fakeConsumptionRepo struct {
	records map[string]models.ConsumptionRecord
	failing bool
}

func newFakeRepo() *fakeConsumptionRepo {
	return &fakeConsumptionRepo{records: make(map[string]models.ConsumptionRecord)}
}

func (f *fakeConsumptionRepo) key(username, date string) string {
	return username + "|" + date
}

func (f *fakeConsumptionRepo) Upsert(_ context.Context, rec models.ConsumptionRecord) (bool, error) {
	if f.failing {
		return false, errors.New("server unavailable")
	}
	k := f.key(rec.Username, rec.Date)
	_, replaced := f.records[k]
	f.records[k] = rec
	return replaced, nil
}

func (f *fakeConsumptionRepo) FindRange(_ context.Context, username, fromDate, toDate string) ([]models.ConsumptionRecord, error) {
	if f.failing {
		return nil, errors.New("server unavailable")
	}
	out := make([]models.ConsumptionRecord, 0)
	for _, rec := range f.records {
		if rec.Username == username && rec.Date >= fromDate && rec.Date <= toDate {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (f *fakeConsumptionRepo) Exists(_ context.Context, username, date string) (bool, error) {
	if f.failing {
		return false, errors.New("server unavailable")
	}
	_, ok := f.records[f.key(username, date)]
	return ok, nil
}

func newTestService(repo *fakeConsumptionRepo, now time.Time) *Service {
	svc := NewService(repo, time.UTC, nil)
	svc.now = func() time.Time { return now }
	return svc
}

func TestSubmitToday_InsertThenOverwrite(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	svc := newTestService(repo, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	first, err := svc.SubmitToday(context.Background(), "asha", models.ApplianceCounts{Lights: 2})
	require.NoError(t, err)
	assert.False(t, first.Overwritten)
	assert.Equal(t, "2025-06-10", first.Record.Date)
	assert.Equal(t, "Tuesday", first.Record.DayOfWeek)

	second, err := svc.SubmitToday(context.Background(), "asha", models.ApplianceCounts{
		Lights: 5, Fans: 2, TVs: 1, AirConditioners: 1, Refrigerators: 1,
	})
	require.NoError(t, err)
	assert.True(t, second.Overwritten)
	assert.InDelta(t, 7.8, second.Record.TotalEnergyKWh, 0.001)
	assert.InDelta(t, 62.40, second.Record.EstimatedCost, 0.001)

	// Exactly one record for that day, holding the second submission.
	require.Len(t, repo.records, 1)
	stored := repo.records["asha|2025-06-10"]
	assert.Equal(t, second.Record.Appliances, stored.Appliances)
	assert.InDelta(t, 7.8, stored.TotalEnergyKWh, 0.001)
}

func TestSubmitToday_NegativeCounts(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	_, err := svc.SubmitToday(context.Background(), "asha", models.ApplianceCounts{TVs: -3})
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrNegativeCount))
}

func TestSubmitToday_StorageFailureSurfaces(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	repo.failing = true
	svc := newTestService(repo, time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC))

	_, err := svc.SubmitToday(context.Background(), "asha", models.ApplianceCounts{Lights: 1})
	require.Error(t, err, "a dropped write must never be silent")
}

func TestGetRange_ZeroWindowIsTodayOnly(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	seed := func(date string, kwh float64) {
		repo.records["asha|"+date] = models.ConsumptionRecord{
			Username: "asha", Date: date, TotalEnergyKWh: kwh,
		}
	}
	seed("2025-06-09", 4)
	seed("2025-06-10", 9)

	records, err := svc.GetRange(context.Background(), "asha", 0)
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "2025-06-10", records[0].Date)

	// And empty, not an error, when today has no record.
	delete(repo.records, "asha|2025-06-10")
	records, err = svc.GetRange(context.Background(), "asha", 0)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestGetRange_AscendingWithinWindow(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	// Written out of order; read order is defined by date, not write order.
	for _, date := range []string{"2025-06-08", "2025-06-03", "2025-06-10", "2025-05-20"} {
		repo.records["asha|"+date] = models.ConsumptionRecord{Username: "asha", Date: date}
	}
	repo.records["ravi|2025-06-09"] = models.ConsumptionRecord{Username: "ravi", Date: "2025-06-09"}

	records, err := svc.GetRange(context.Background(), "asha", 7)
	require.NoError(t, err)
	require.Len(t, records, 3)
	for i := 1; i < len(records); i++ {
		assert.LessOrEqual(t, records[i-1].Date, records[i].Date)
	}
	assert.Equal(t, "2025-06-03", records[0].Date)
	assert.Equal(t, "2025-06-10", records[2].Date)
}

func TestGetRange_NegativeWindow(t *testing.T) {
	t.Parallel()

	svc := newTestService(newFakeRepo(), time.Now())

	_, err := svc.GetRange(context.Background(), "asha", -1)
	require.Error(t, err)
	assert.True(t, errors.Is(err, models.ErrInvalidWindow))
}

func TestExists(t *testing.T) {
	t.Parallel()

	repo := newFakeRepo()
	now := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	svc := newTestService(repo, now)

	ok, err := svc.Exists(context.Background(), "asha", "2025-06-10")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = svc.SubmitToday(context.Background(), "asha", models.ApplianceCounts{Lights: 1})
	require.NoError(t, err)

	ok, err = svc.Exists(context.Background(), "asha", "2025-06-10")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestSummarize(t *testing.T) {
	t.Parallel()

	records := []models.ConsumptionRecord{
		{Date: "2025-06-01", TotalEnergyKWh: 10, EstimatedCost: 80},
		{Date: "2025-06-02", TotalEnergyKWh: 16, EstimatedCost: 128},
		{Date: "2025-06-03", TotalEnergyKWh: 5, EstimatedCost: 40},
	}

	sum := Summarize(records)
	assert.Equal(t, 3, sum.Days)
	assert.InDelta(t, 31.00, sum.TotalEnergyKWh, 0.001)
	assert.InDelta(t, 248.00, sum.TotalCost, 0.001)
	assert.InDelta(t, 10.33, sum.AverageDailyKWh, 0.001)
	assert.InDelta(t, 309.90, sum.MonthlyProjectionKWh, 0.001)
	require.Len(t, sum.HighConsumptionDays, 1)
	assert.Equal(t, "2025-06-02", sum.HighConsumptionDays[0].Date)
}

func TestSummarize_NoData(t *testing.T) {
	t.Parallel()

	sum := Summarize(nil)
	assert.Equal(t, 0, sum.Days)
	assert.Zero(t, sum.TotalEnergyKWh)
	assert.Zero(t, sum.AverageDailyKWh)
	assert.Zero(t, sum.MonthlyProjectionKWh)
	assert.Empty(t, sum.HighConsumptionDays)
}

func TestSummarize_ThresholdIsStrict(t *testing.T) {
	t.Parallel()

	sum := Summarize([]models.ConsumptionRecord{
		{Date: "2025-06-01", TotalEnergyKWh: 15},
		{Date: "2025-06-02", TotalEnergyKWh: 15.01},
	})
	require.Len(t, sum.HighConsumptionDays, 1)
	assert.Equal(t, "2025-06-02", sum.HighConsumptionDays[0].Date)
}
