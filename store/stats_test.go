package store

import (
	"context"
	"testing"
)

func TestStatsStore_GetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("empty store", func(t *testing.T) {
		db := newTestDB(t)
		stats, err := NewStatsStore(db).GetStats(ctx)
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.TotalVehicles != 0 || stats.TotalServices != 0 {
			t.Fatalf("expected zero totals, got %+v", stats)
		}
		if stats.LastVehicle != nil || stats.LastService != nil {
			t.Fatal("expected nil last records on empty store")
		}
	})

	t.Run("counts and latest records", func(t *testing.T) {
		db := newTestDB(t)
		vehicles := NewVehicleStore(db, "+57")
		services := NewServiceStore(db)

		registerVehicle(t, vehicles, "ABC123")
		registerVehicle(t, vehicles, "XYZ999")
		for _, workOrder := range []int{1, 2, 3} {
			_, _, err := services.Register(ctx, RegisterInput{
				WorkOrder: workOrder, Plate: "ABC123", Work: "Oil change", Cost: 30,
			})
			if err != nil {
				t.Fatalf("register failed: %v", err)
			}
		}

		stats, err := NewStatsStore(db).GetStats(ctx)
		if err != nil {
			t.Fatalf("stats failed: %v", err)
		}
		if stats.TotalVehicles != 2 || stats.TotalServices != 3 {
			t.Fatalf("unexpected totals: %+v", stats)
		}
		if stats.LastService == nil || stats.LastService.WorkOrder != 3 {
			t.Fatalf("expected last service to be work order 3, got %+v", stats.LastService)
		}
		if stats.LastVehicle == nil {
			t.Fatal("expected a last vehicle")
		}
		if len(stats.Monthly) != 1 || stats.Monthly[0].Count != 3 || stats.Monthly[0].Revenue != 90 {
			t.Fatalf("unexpected monthly rollup: %+v", stats.Monthly)
		}
	})
}
