package store

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"github.com/lazypower/soulgatchi/internal/pet"
)

func TestAddActivity(t *testing.T) {
	db := testDB(t)
	at := time.Now()
	life, _ := db.BeginLife("Nur", "🐰", at)

	err := db.AddActivity(pet.Activity{
		Kind:   pet.KindRitual,
		Detail: pet.RitualSubhanallah,
		Stats:  pet.Stats{Health: 20.5, Spirituality: 21, Energy: 20.5, Happiness: 20.5},
		At:     at,
	})
	if err != nil {
		t.Fatalf("AddActivity: %v", err)
	}

	acts, err := db.RecentActivities(10)
	if err != nil {
		t.Fatalf("RecentActivities: %v", err)
	}
	if len(acts) != 1 {
		t.Fatalf("got %d activities, want 1", len(acts))
	}
	a := acts[0]
	if a.Kind != pet.KindRitual || a.Detail != pet.RitualSubhanallah {
		t.Errorf("activity = %+v", a)
	}
	if a.Stats.Spirituality != 21 {
		t.Errorf("Spirituality = %v, want 21", a.Stats.Spirituality)
	}
	if a.LifeID == nil || *a.LifeID != life.ID {
		t.Errorf("LifeID = %v, want %d", a.LifeID, life.ID)
	}

	n, _ := db.CountActivities(life.ID)
	if n != 1 {
		t.Errorf("CountActivities = %d, want 1", n)
	}
}

func TestAddActivityWithoutLife(t *testing.T) {
	db := testDB(t)

	if err := db.AddActivity(pet.Activity{Kind: pet.KindRest}); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	acts, _ := db.RecentActivities(1)
	if acts[0].LifeID != nil {
		t.Errorf("LifeID = %v, want nil", *acts[0].LifeID)
	}
}

func TestAddActivityTruncatesDetail(t *testing.T) {
	db := testDB(t)

	long := strings.Repeat("x", 1024)
	if err := db.AddActivity(pet.Activity{Kind: pet.KindStudy, Detail: long}); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	acts, _ := db.RecentActivities(1)
	if len(acts[0].Detail) != maxDetailSize {
		t.Errorf("Detail length = %d, want %d", len(acts[0].Detail), maxDetailSize)
	}

	// 100 three-byte runes: the cut must land on a rune boundary.
	euros := strings.Repeat("€", 100)
	if err := db.AddActivity(pet.Activity{Kind: pet.KindStudy, Detail: euros, At: time.Now().Add(time.Second)}); err != nil {
		t.Fatalf("AddActivity: %v", err)
	}
	acts, _ = db.RecentActivities(1)
	got := acts[0].Detail
	if !utf8.ValidString(got) {
		t.Fatalf("Detail is not valid UTF-8: %q", got[len(got)-3:])
	}
	if want := strings.Repeat("€", maxDetailSize/3); got != want {
		t.Errorf("Detail length = %d, want %d", len(got), len(want))
	}
}

func TestRecentActivitiesOrder(t *testing.T) {
	db := testDB(t)
	at := time.Now()

	db.AddActivity(pet.Activity{Kind: pet.KindRest, At: at})
	db.AddActivity(pet.Activity{Kind: pet.KindStudy, At: at.Add(time.Second)})

	acts, _ := db.RecentActivities(10)
	if len(acts) != 2 || acts[0].Kind != pet.KindStudy {
		t.Errorf("activities = %+v, want study first", acts)
	}
}
