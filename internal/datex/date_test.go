package datex

import (
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name   string
		id     string
		want   civil.Date
		wantOK bool
	}{
		{
			name:   "plain date identifier",
			id:     "20250115",
			want:   civil.Date{Year: 2025, Month: time.January, Day: 15},
			wantOK: true,
		},
		{
			name:   "date at tail of longer identifier",
			id:     "anything12345678_20250115",
			want:   civil.Date{Year: 2025, Month: time.January, Day: 15},
			wantOK: true,
		},
		{
			name:   "invalid day for april",
			id:     "session_20250431",
			wantOK: false,
		},
		{
			name:   "month out of range",
			id:     "session_20251501",
			wantOK: false,
		},
		{
			name:   "shorter than eight characters",
			id:     "2025011",
			wantOK: false,
		},
		{
			name:   "non-numeric tail",
			id:     "daily-summary-v2",
			wantOK: false,
		},
		{
			name:   "empty identifier",
			id:     "",
			wantOK: false,
		},
		{
			name:   "leap day accepted",
			id:     "weekly_20240229",
			want:   civil.Date{Year: 2024, Month: time.February, Day: 29},
			wantOK: true,
		},
		{
			name:   "non-leap-year february 29 rejected",
			id:     "weekly_20250229",
			wantOK: false,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got, ok := Extract(tt.id)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}
