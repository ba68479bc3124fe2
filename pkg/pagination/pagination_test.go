package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, NormalizeLimit(0))
	assert.Equal(t, DefaultLimit, NormalizeLimit(-5))
	assert.Equal(t, 25, NormalizeLimit(25))
	assert.Equal(t, MaxLimit, NormalizeLimit(1000))
}

func TestFromQuery(t *testing.T) {
	q := url.Values{}
	q.Set("limit", "30")
	q.Set("offset", "40")
	p := FromQuery(q)
	assert.Equal(t, 30, p.Limit)
	assert.Equal(t, 40, p.Offset)

	p = FromQuery(url.Values{})
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)

	q = url.Values{}
	q.Set("limit", "junk")
	q.Set("offset", "-3")
	p = FromQuery(q)
	assert.Equal(t, DefaultLimit, p.Limit)
	assert.Equal(t, 0, p.Offset)
}
