// Package sample generates demonstration record sets and writes them as CSV.
package sample

import (
	"math"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"

	"github.com/j-veylop/gig-worker-hub/internal/models"
)

const (
	// Days is the number of consecutive days in a generated set.
	Days = 90

	minEarnings = 50
	maxEarnings = 200
	minHours    = 2
	maxHours    = 8
	minMiles    = 5.0
	maxMiles    = 50.0

	// SourceName labels generated sets.
	SourceName = "sample data"
)

// Epoch is the first date of every generated set.
var Epoch = time.Date(2023, time.January, 1, 0, 0, 0, 0, time.UTC)

// Platforms are the labels a generated record can carry.
var Platforms = []string{"Uber", "DoorDash", "Lyft"}

// NewRand returns an unseeded source, so successive sets differ.
func NewRand() *rand.Rand {
	return rand.New(rand.NewSource(time.Now().UnixNano())) // #nosec G404 -- demo data
}

// Generate builds a synthetic record set of Days consecutive days.
// Pass a seeded source for reproducible output.
func Generate(rng *rand.Rand) *models.RecordSet {
	if rng == nil {
		rng = NewRand()
	}

	records := make([]models.Record, Days)
	for i := range records {
		miles := minMiles + rng.Float64()*(maxMiles-minMiles)
		records[i] = models.Record{
			Date:     Epoch.AddDate(0, 0, i),
			Earnings: decimal.NewFromInt(int64(minEarnings + rng.Intn(maxEarnings-minEarnings))),
			Hours:    float64(minHours + rng.Intn(maxHours-minHours)),
			Platform: Platforms[rng.Intn(len(Platforms))],
			Miles:    math.Round(miles*10) / 10,
		}
	}

	return &models.RecordSet{
		LoadedAt: time.Now(),
		Source:   SourceName,
		Columns:  append([]string(nil), ExportColumns...),
		Records:  records,
		HasMiles: true,
	}
}
