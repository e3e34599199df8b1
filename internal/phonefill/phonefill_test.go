package phonefill

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/fieldmap/internal/reader"
)

func TestIsPhoneHeader(t *testing.T) {
	tests := []struct {
		name string
		want bool
	}{
		{"手机号", true},
		{"联系电话", true},
		{"联系人方式", true},
		{"Mobile Phone", true},
		{"TEL", true},
		{"contact_number", true},
		{"保单号", false},
		{"地址", false},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IsPhoneHeader(tt.name), tt.name)
	}
}

func TestIsPhoneColumn(t *testing.T) {
	tests := []struct {
		name string
		col  reader.Column
		want bool
	}{
		{
			name: "mostly eleven digit",
			col:  reader.Column{Name: "手机号", Values: []string{"13812345678", "15987654321", "x"}},
			want: true,
		},
		{
			name: "mostly empty",
			col:  reader.Column{Name: "联系电话", Values: []string{"", "", ""}},
			want: true,
		},
		{
			name: "matching header but free text",
			col:  reader.Column{Name: "联系方式", Values: []string{"微信", "邮箱", "电话"}},
			want: false,
		},
		{
			name: "non-phone header",
			col:  reader.Column{Name: "保费", Values: []string{"13812345678"}},
			want: false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPhoneColumn(tt.col))
		})
	}
}

func TestFiller_Next(t *testing.T) {
	f, reserved := NewFiller("100", rand.New(rand.NewSource(1)))
	assert.True(t, reserved)

	seen := make(map[string]struct{})
	for i := 0; i < 1000; i++ {
		n := f.Next()
		require.Regexp(t, `^100\d{8}$`, n)
		_, dup := seen[n]
		require.False(t, dup, "duplicate number %s", n)
		seen[n] = struct{}{}
	}
}

func TestFiller_Deterministic(t *testing.T) {
	a, _ := NewFiller("102", rand.New(rand.NewSource(7)))
	b, _ := NewFiller("102", rand.New(rand.NewSource(7)))
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Next(), b.Next())
	}
}

func TestNewFiller_UnreservedPrefix(t *testing.T) {
	_, reserved := NewFiller("138", rand.New(rand.NewSource(1)))
	assert.False(t, reserved, "carrier prefix is not in the reserved set")
}

func TestFillTable(t *testing.T) {
	tbl := &reader.Table{Columns: []reader.Column{
		{Name: "保单号", Values: []string{"P001", "P002", "P003"}},
		{Name: "手机号", Values: []string{"13812345678", "", "NaN"}},
		{Name: "备注", Values: []string{"", "", ""}},
	}}

	filler, _ := NewFiller("100", rand.New(rand.NewSource(42)))
	results := FillTable(tbl, filler)

	require.Len(t, results, 1, "only the phone column is touched")
	assert.Equal(t, "手机号", results[0].Column)
	assert.Equal(t, 2, results[0].Filled)
	assert.Equal(t, 1, results[0].Kept)

	phones := tbl.Columns[1].Values
	assert.Equal(t, "13812345678", phones[0], "existing value kept")
	assert.Regexp(t, `^100\d{8}$`, phones[1])
	assert.Regexp(t, `^100\d{8}$`, phones[2])
	assert.NotEqual(t, phones[1], phones[2])

	// Non-phone columns untouched.
	assert.Equal(t, []string{"P001", "P002", "P003"}, tbl.Columns[0].Values)
	assert.Equal(t, []string{"", "", ""}, tbl.Columns[2].Values)
}
