package mango

import (
	"testing"

	"github.com/go-quicktest/qt"
)

func TestCoinTableDeterministic(t *testing.T) {
	opts := Options{
		Password:   []byte("sample-password"),
		Salt:       make([]byte, saltLen),
		Iterations: 1000,
		Rfc2898:    true,
	}
	a, err := deriveCoinTable(opts)
	qt.Assert(t, qt.IsNil(err))
	b, err := deriveCoinTable(opts)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.DeepEquals(a.Forward, b.Forward))
	qt.Assert(t, qt.DeepEquals(a.Inverse, b.Inverse))
}

func TestCoinTableIsBijective(t *testing.T) {
	opts := Options{
		Password: []byte("p4ssw0rd"),
		Salt:     make([]byte, saltLen),
	}
	table, err := deriveCoinTable(opts)
	qt.Assert(t, qt.IsNil(err))
	for i, v := range table.Forward {
		qt.Assert(t, qt.Equals(table.Inverse[v], byte(i)))
	}
}

func TestCoinTableWithZoneDiffersFromWithout(t *testing.T) {
	base := Options{Password: []byte("p4ssw0rd"), Salt: make([]byte, saltLen), Iterations: 1000, Rfc2898: true}
	withZone := base
	withZone.ZoneInfo = []byte("zone-a")

	a, err := deriveCoinTable(base)
	qt.Assert(t, qt.IsNil(err))
	b, err := deriveCoinTable(withZone)
	qt.Assert(t, qt.IsNil(err))
	qt.Assert(t, qt.Not(qt.DeepEquals(a.Forward, b.Forward)))
}

func TestCoinTableRejectsBadSaltLength(t *testing.T) {
	_, err := deriveCoinTable(Options{Password: []byte("x"), Salt: []byte{1, 2, 3}})
	qt.Assert(t, qt.ErrorMatches(err, ".*salt.*"))
}

func TestCBoxDeterministicFromSameInputs(t *testing.T) {
	table, err := deriveCoinTable(Options{Password: []byte("x"), Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))

	h1, c1 := deriveCBox([]byte("hello world"), &table.Forward)
	h2, c2 := deriveCBox([]byte("hello world"), &table.Forward)
	qt.Assert(t, qt.DeepEquals(h1, h2))
	qt.Assert(t, qt.DeepEquals(c1.Forward, c2.Forward))
}

func TestCBoxFromHashMatchesOriginalDerivation(t *testing.T) {
	table, err := deriveCoinTable(Options{Password: []byte("x"), Salt: make([]byte, saltLen)})
	qt.Assert(t, qt.IsNil(err))

	h, original := deriveCBox([]byte("payload"), &table.Forward)
	rebuilt := cboxFromHash(h)
	qt.Assert(t, qt.DeepEquals(original.Forward, rebuilt.Forward))
	qt.Assert(t, qt.DeepEquals(original.Inverse, rebuilt.Inverse))
}

func TestActiveCBoxScopeRestoresOnPanic(t *testing.T) {
	session := &Session{active: activeDefault}
	cbox := Permutation{}
	session.currentCBox = &cbox

	func() {
		defer func() { _ = recover() }()
		_ = session.withActiveCBox(activeCoinTable, func() error {
			panic("boom")
		})
	}()

	qt.Assert(t, qt.Equals(session.active, activeDefault))
}

func TestActiveCBoxScopeRestoresOnError(t *testing.T) {
	session := &Session{active: activeDefault}
	cbox := Permutation{}
	session.currentCBox = &cbox

	err := session.withActiveCBox(activeCoinTable, func() error {
		return newErr(ErrFormat, "boom")
	})
	qt.Assert(t, qt.IsNotNil(err))
	qt.Assert(t, qt.Equals(session.active, activeDefault))
}
