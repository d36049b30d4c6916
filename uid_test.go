package srx

import "testing"

func TestUID_Valid(t *testing.T) {
	cases := []struct {
		name string
		uid  UID
		want bool
	}{
		{"no uid", NoUID, false},
		{"zero handle", UID{Handle: 0, Width: 4}, false},
		{"zero width", UID{Handle: 1, Width: 0}, false},
		{"valid", UID{Handle: 1, Width: 4}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.uid.Valid(); got != c.want {
				t.Fatalf("Valid() = %v, wanted %v", got, c.want)
			}
		})
	}
}

func TestUIDChain_HeadAndPointee(t *testing.T) {
	var empty UIDChain
	if empty.Head() != NoUID {
		t.Fatalf("empty chain Head() = %v, wanted NoUID", empty.Head())
	}
	if empty.Pointee() != NoUID {
		t.Fatalf("empty chain Pointee() = %v, wanted NoUID", empty.Pointee())
	}

	single := UIDChain{{Handle: 1, Width: 4}}
	if single.Head() != single[0] {
		t.Fatalf("single.Head() = %v, wanted %v", single.Head(), single[0])
	}
	if single.Pointee() != NoUID {
		t.Fatalf("single.Pointee() = %v, wanted NoUID", single.Pointee())
	}

	pair := UIDChain{{Handle: 1, Width: 8}, {Handle: 2, Width: 4}}
	if pair.Head() != pair[0] {
		t.Fatalf("pair.Head() = %v, wanted %v", pair.Head(), pair[0])
	}
	if pair.Pointee() != pair[1] {
		t.Fatalf("pair.Pointee() = %v, wanted %v", pair.Pointee(), pair[1])
	}
}
