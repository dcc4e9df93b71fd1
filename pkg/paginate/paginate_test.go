package paginate_test

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/huyvng/storedash/pkg/paginate"
)

func TestNormalizeLimitAllowList(t *testing.T) {
	cases := []struct {
		in   int
		want int
	}{
		{5, 5},
		{10, 10},
		{20, 20},
		{0, 10},
		{-3, 10},
		{15, 10},
		{100, 10},
	}
	for _, tc := range cases {
		p := paginate.Normalize(1, tc.in)
		assert.Equal(t, tc.want, p.Limit, "limit %d", tc.in)
	}
}

func TestNormalizePageFloor(t *testing.T) {
	assert.Equal(t, 1, paginate.Normalize(0, 10).Page)
	assert.Equal(t, 1, paginate.Normalize(-5, 10).Page)
	assert.Equal(t, 7, paginate.Normalize(7, 10).Page)
}

func TestPagesCeiling(t *testing.T) {
	p := paginate.Normalize(1, 10)
	assert.Equal(t, 0, p.Pages(0))
	assert.Equal(t, 1, p.Pages(1))
	assert.Equal(t, 1, p.Pages(10))
	assert.Equal(t, 2, p.Pages(11))
	assert.Equal(t, 3, p.Pages(25))
}

func TestSkip(t *testing.T) {
	assert.Equal(t, int64(0), paginate.Normalize(1, 10).Skip())
	assert.Equal(t, int64(40), paginate.Normalize(3, 20).Skip())
}

func TestFromRequest(t *testing.T) {
	r := httptest.NewRequest("GET", "/api/products?page=2&limit=20", nil)
	p := paginate.FromRequest(r)
	assert.Equal(t, 2, p.Page)
	assert.Equal(t, 20, p.Limit)

	r = httptest.NewRequest("GET", "/api/products?page=abc&limit=7", nil)
	p = paginate.FromRequest(r)
	assert.Equal(t, 1, p.Page)
	assert.Equal(t, 10, p.Limit)
}
