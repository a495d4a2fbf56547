package page

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katoyeung/data-node/internal/domain"
)

func TestPaginate(t *testing.T) {
	tests := []struct {
		name                string
		offset, limit       int
		total               uint64
		wantPage, wantPages int
	}{
		{"first page", 0, 20, 45, 1, 3},
		{"second page", 20, 20, 45, 2, 3},
		{"mid page offset", 25, 20, 45, 2, 3},
		{"exact fit", 40, 20, 40, 3, 2},
		{"no hits", 0, 20, 0, 1, 0},
		{"single hit", 0, 10, 1, 1, 1},
		{"limit one", 7, 1, 9, 8, 9},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p, pages, err := Paginate(tc.offset, tc.limit, tc.total)
			require.NoError(t, err)
			assert.Equal(t, tc.wantPage, p)
			assert.Equal(t, tc.wantPages, pages)
		})
	}
}

func TestPaginate_Properties(t *testing.T) {
	for limit := 1; limit <= 7; limit++ {
		for total := uint64(0); total <= 30; total++ {
			for offset := 0; offset <= 30; offset += 3 {
				p, pages, err := Paginate(offset, limit, total)
				require.NoError(t, err)
				assert.GreaterOrEqual(t, p, 1)

				ceil := int(total) / limit
				if int(total)%limit != 0 {
					ceil++
				}
				assert.Equal(t, ceil, pages)
				assert.Equal(t, total == 0, pages == 0)
			}
		}
	}
}

func TestPaginate_InvalidLimit(t *testing.T) {
	for _, limit := range []int{0, -1} {
		_, _, err := Paginate(0, limit, 10)
		assert.ErrorIs(t, err, domain.ErrInvalidLimit)
	}
}
