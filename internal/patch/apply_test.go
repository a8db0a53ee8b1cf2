package patch

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"substruct-generator/internal/opaque"
	"substruct-generator/internal/record"
)

func accountRecord() record.Record {
	return record.Record{
		"id":       1,
		"name":     "acme",
		"nickname": "ac",
		"settings": settings{Theme: "light", Size: 2},
		"address":  map[string]any{"street": "Main St", "city": "Paris"},
		"notes":    []string{"undeclared"},
	}
}

func TestNoChangeRoundTrip(t *testing.T) {
	s := accountSchema(addressSchema())
	r := accountRecord()

	p, err := NoChangeFrom(s, r)
	require.NoError(t, err)

	out, err := p.Apply(r)
	require.NoError(t, err)
	assert.True(t, record.Equal(r, out))

	changed, err := p.WouldChange(r)
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestWouldChangeMatchesApply(t *testing.T) {
	addr := addressSchema()
	s := accountSchema(addr)

	sameCity, err := New(addr, Absent(), Set("Paris"))
	require.NoError(t, err)
	newCity, err := New(addr, Absent(), Set("Lyon"))
	require.NoError(t, err)
	emptyAddr, err := New(addr, Absent(), Absent())
	require.NoError(t, err)

	base := Zero(s)
	with := func(t *testing.T, p *Patch, name string, st State) *Patch {
		t.Helper()

		out, err := p.With(name, st)
		require.NoError(t, err)

		return out
	}

	tests := []struct {
		name  string
		patch func(t *testing.T) *Patch
		want  bool
	}{
		{name: "direct same", patch: func(t *testing.T) *Patch { return with(t, base, "id", Set(1)) }, want: false},
		{name: "direct differs", patch: func(t *testing.T) *Patch { return with(t, base, "id", Set(2)) }, want: true},
		{name: "settable same", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "name", Set("acme"))
		}, want: false},
		{name: "settable differs", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "name", Set("corp"))
		}, want: true},
		{name: "nullable null", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "nickname", SetNull())
		}, want: true},
		{name: "nullable same", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "nickname", Set("ac"))
		}, want: false},
		{name: "opaque same", patch: func(t *testing.T) *Patch {
			v := opaque.MustEncode(settings{Theme: "light", Size: 2})
			return with(t, with(t, base, "id", Set(1)), "settings", SetOpaque(v))
		}, want: false},
		{name: "opaque differs", patch: func(t *testing.T) *Patch {
			v := opaque.MustEncode(map[string]any{"theme": "dark", "size": 2})
			return with(t, with(t, base, "id", Set(1)), "settings", SetOpaque(v))
		}, want: true},
		{name: "nested same", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "address", SetNested(sameCity))
		}, want: false},
		{name: "nested empty", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "address", SetNested(emptyAddr))
		}, want: false},
		{name: "nested differs", patch: func(t *testing.T) *Patch {
			return with(t, with(t, base, "id", Set(1)), "address", SetNested(newCity))
		}, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := accountRecord()
			p := tt.patch(t)

			changed, err := p.WouldChange(r)
			require.NoError(t, err)
			assert.Equal(t, tt.want, changed)

			out, err := p.Apply(r)
			require.NoError(t, err)
			assert.Equal(t, !tt.want, record.Equal(r, out))
		})
	}
}

func TestApplyOpaqueDecodesIntoRecordType(t *testing.T) {
	s := accountSchema(addressSchema())
	r := accountRecord()

	p, err := NoChangeFrom(s, r)
	require.NoError(t, err)

	p, err = p.With("settings", SetOpaque(opaque.MustEncode(settings{Theme: "dark", Size: 5})))
	require.NoError(t, err)

	out, err := p.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, settings{Theme: "dark", Size: 5}, out["settings"])

	// Without a current value the generic form is stored.
	delete(r, "settings")

	out, err = p.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"theme": "dark", "size": float64(5)}, out["settings"])

	bad, err := p.With("settings", SetOpaque(opaque.MustEncode("not an object")))
	require.NoError(t, err)

	_, err = bad.Apply(accountRecord())
	assert.Error(t, err)

	_, err = bad.WouldChange(accountRecord())
	assert.Error(t, err)
}

func TestApplyNestedCreatesMissingSubRecord(t *testing.T) {
	addr := addressSchema()
	s := accountSchema(addr)

	city, err := New(addr, Absent(), Set("Rome"))
	require.NoError(t, err)

	p, err := New(s, 1, Absent(), Absent(), Absent(), SetNested(city))
	require.NoError(t, err)

	r := record.Record{"id": 1}

	changed, err := p.WouldChange(r)
	require.NoError(t, err)
	assert.True(t, changed)

	out, err := p.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, record.Record{"city": "Rome"}, out["address"])

	_, err = p.Apply(record.Record{"id": 1, "address": "not a record"})
	assert.Error(t, err)

	_, err = p.WouldChange(record.Record{"id": 1, "address": 5})
	assert.Error(t, err)
}

func TestApplyInPlace(t *testing.T) {
	addr := addressSchema()
	s := accountSchema(addr)

	city, err := New(addr, Absent(), Set("Rome"))
	require.NoError(t, err)

	p, err := New(s, 9, Set("corp"), SetNull(), Absent(), SetNested(city))
	require.NoError(t, err)

	r := accountRecord()
	sub := r["address"].(map[string]any)

	want, err := p.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, "Paris", sub["city"])

	require.NoError(t, p.ApplyInPlace(r))
	assert.True(t, record.Equal(want, r))
	assert.Equal(t, "Rome", sub["city"])
	assert.Equal(t, 9, r["id"])
	assert.Nil(t, r["nickname"])
}

func TestApplyNilRecord(t *testing.T) {
	p, err := New(userSchema(), Set("x"), Absent())
	require.NoError(t, err)

	out, err := p.Apply(nil)
	require.NoError(t, err)
	assert.Equal(t, record.Record{"name": "x"}, out)
}

func TestApplyKeepsUndeclaredValues(t *testing.T) {
	type hidden struct {
		n int
	}

	s := accountSchema(addressSchema())
	stamp := time.Date(2024, 1, 2, 3, 4, 5, 6, time.UTC)

	r := accountRecord()
	r["created"] = stamp
	r["secret"] = hidden{n: 7}
	r["address"].(map[string]any)["since"] = stamp

	p, err := NoChangeFrom(s, r)
	require.NoError(t, err)

	changed, err := p.WouldChange(r)
	require.NoError(t, err)
	assert.False(t, changed)

	out, err := p.Apply(r)
	require.NoError(t, err)
	assert.True(t, record.Equal(r, out))
	assert.Equal(t, stamp, out["created"])
	assert.Equal(t, hidden{n: 7}, out["secret"])

	p, err = p.With("name", Set("corp"))
	require.NoError(t, err)

	out, err = p.Apply(r)
	require.NoError(t, err)
	assert.Equal(t, "corp", out["name"])
	assert.Equal(t, "acme", r["name"])
	assert.Equal(t, stamp, out["created"])
	assert.Equal(t, hidden{n: 7}, out["secret"])
	assert.Equal(t, stamp, out["address"].(map[string]any)["since"])
}
