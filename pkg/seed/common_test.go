package seed

import (
	"bufio"
	"encoding/json"
	"io"
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"liyu1981.xyz/iot-dashboard/pkg/db"
	_ "liyu1981.xyz/iot-dashboard/pkg/testing"
)

var fixedNow = time.Date(2026, time.October, 18, 12, 0, 0, 0, time.UTC)

// NewTestSeeder returns a seeder over its own in-memory database with a fixed clock
// and a deterministic random source.
func NewTestSeeder(t *testing.T) *Seeder {
	d, err := db.Open(db.UseMemorySqliteDialector())
	require.NoError(t, err)
	t.Cleanup(func() { _ = d.Close() })

	s := New(d)
	s.Now = func() time.Time { return fixedNow }
	s.Rand = rand.New(rand.NewSource(1))
	return s
}

func ParseLogs(r io.Reader) []map[string]any {
	scanner := bufio.NewScanner(r)
	var logs []map[string]any

	for scanner.Scan() {
		var j map[string]any
		if err := json.Unmarshal(scanner.Bytes(), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
