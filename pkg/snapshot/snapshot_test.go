package snapshot

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/headless/pkg/datepicker"
	"github.com/dshills/headless/pkg/listbox"
	"github.com/dshills/headless/pkg/selection"
	"github.com/dshills/headless/pkg/table"
)

func TestParseFormat(t *testing.T) {
	tests := []struct {
		in      string
		want    Format
		wantErr bool
	}{
		{"", FormatJSON, false},
		{"JSON", FormatJSON, false},
		{"msgpack", FormatMsgpack, false},
		{"mp", FormatMsgpack, false},
		{"xml", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFormat(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEncodeDecodeSelectionState(t *testing.T) {
	in := listbox.State{SelectedIDs: selection.NewSet("b", "a"), FocusedID: "a"}
	for _, f := range []Format{FormatJSON, FormatMsgpack} {
		t.Run(string(f), func(t *testing.T) {
			data, err := Encode(in, f)
			require.NoError(t, err)
			var out listbox.State
			require.NoError(t, Decode(data, f, &out))
			assert.Equal(t, []string{"b", "a"}, out.SelectedIDs.IDs())
			assert.Equal(t, "a", out.FocusedID)
		})
	}

	_, err := Encode(in, "xml")
	assert.ErrorIs(t, err, ErrUnknownFormat)
	assert.ErrorIs(t, Decode(nil, "xml", &in), ErrUnknownFormat)
}

func TestMsgpackIsSmallerThanJSON(t *testing.T) {
	st := table.State{Sort: table.Sort{Column: "name", Direction: table.Ascending}, SelectedRowIDs: selection.NewSet("r1", "r2", "r3")}
	j, err := Encode(st, FormatJSON)
	require.NoError(t, err)
	m, err := Encode(st, FormatMsgpack)
	require.NoError(t, err)
	assert.Less(t, len(m), len(j))
}

func TestToMap(t *testing.T) {
	day := time.Date(2026, 2, 10, 0, 0, 0, 0, time.UTC)
	m, err := ToMap(datepicker.State{Open: true, SelectedDate: day})
	require.NoError(t, err)
	assert.Equal(t, true, m["open"])
	assert.Equal(t, "2026-02-10T00:00:00Z", m["selectedDate"])

	m, err = ToMap(table.State{SelectedRowIDs: selection.NewSet("r1")})
	require.NoError(t, err)
	assert.Equal(t, []any{"r1"}, m["selectedRowIds"])

	_, err = ToMap([]int{1})
	assert.Error(t, err)
}

func TestSigner(t *testing.T) {
	s := NewSigner([]byte("short-key"))
	token, err := s.Sign(listbox.State{FocusedID: "x", SelectedIDs: selection.NewSet("x")})
	require.NoError(t, err)

	var out listbox.State
	require.NoError(t, s.Verify(token, &out))
	assert.Equal(t, "x", out.FocusedID)
	assert.True(t, out.SelectedIDs.Has("x"))

	other := NewSigner([]byte("another-key"))
	assert.ErrorIs(t, other.Verify(token, &out), ErrInvalidToken)
	assert.ErrorIs(t, s.Verify("no-dot", &out), ErrInvalidToken)
	assert.ErrorIs(t, s.Verify("!!!.abc", &out), ErrInvalidToken)

	body, _, _ := strings.Cut(token, ".")
	tampered := body + "A." + strings.SplitN(token, ".", 2)[1]
	assert.ErrorIs(t, s.Verify(tampered, &out), ErrInvalidToken)
}
