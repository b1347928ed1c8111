// Package seed populates the dashboard schema with demonstration data.
//
// Every script is a straight sequence of inserts over one database handle: the first
// failing insert aborts the run and nothing is rolled back. Only the demo user (looked
// up by open id) and the device type catalog (duplicate keys ignored) are idempotent,
// reseeding duplicates devices, readings, alert rules, rooms and smart devices.
package seed

import (
	"math/rand"
	"time"

	gonanoid "github.com/matoous/go-nanoid/v2"
	"liyu1981.xyz/iot-dashboard/pkg/db"
)

// TokenLength is the length of every generated device token.
const TokenLength = 32

type Seeder struct {
	Db *db.DB

	// Now is read once per script, all generated timestamps derive from it.
	Now      func() time.Time
	Rand     *rand.Rand
	NewToken func() (string, error)
}

func New(d *db.DB) *Seeder {
	return &Seeder{
		Db:       d,
		Now:      time.Now,
		Rand:     rand.New(rand.NewSource(time.Now().UnixNano())),
		NewToken: NewDeviceToken,
	}
}

// NewDeviceToken returns a random url-safe token of TokenLength characters.
func NewDeviceToken() (string, error) {
	return gonanoid.New(TokenLength)
}

func ptr[T any](v T) *T {
	return &v
}
