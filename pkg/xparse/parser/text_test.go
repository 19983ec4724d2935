package parser

import (
	"testing"

	"github.com/ukaji3/xparse-go/pkg/xparse/grid"
)

func TestIsMeaningful(t *testing.T) {
	tests := []struct {
		value    grid.Value
		expected bool
	}{
		{grid.Text("-"), false},
		{grid.Text(" -  "), false},
		{grid.Text("не имеет"), false},
		{grid.Text("  не   имеет   "), false},
		{grid.Text(""), false},
		{grid.Text(" "), false},
		{grid.Text("   "), false},
		{grid.Empty(), false},
		{grid.Text("Автомобиль легковой:"), false},
		{grid.Text("Автоприцеп:"), false},
		{grid.Text("автомобили легковые:"), false},
		{grid.Text("иные транспортные средства:"), false},
		{grid.Text("опель"), true},
		{grid.Text("автоприцеп радуга"), true},
		{grid.Text("автоприцеп: радуга 5"), true},
		{grid.Text("Автомобиль легковой хонда"), true},
		{grid.Text("Автомобиль легковой: хонда"), true},
		{grid.Number(200.00001), true},
		{grid.Number(123), true},
		{grid.Text("опель-астра"), true},
		{grid.Text("ниссан - гтр"), true},
	}

	for _, tt := range tests {
		if result := IsMeaningful(tt.value); result != tt.expected {
			t.Errorf("IsMeaningful(%q) = %v, expected %v", tt.value.String(), result, tt.expected)
		}
	}
}

func TestExtractFraction(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"(1/215 доли)", "1/215"},
		{"(120/13185 доли)", "120/13185"},
		{"(2/1261 доли)", "2/1261"},
		{"(37/100 доли)", "37/100"},
		{"(46/2922 доли)", "46/2922"},
		{"(5/9 доли)", "5/9"},
		{"(774/33017 доли)", "774/33017"},
		{"(9/32 доли)", "9/32"},
		{"(доля в праве 4,62 га)", "4,62"},
		{"1/ 3 доли", "1/3"},
		{"долевая1 / 3 доли", "1/3"},
		{"долевая1 /. 3 доли", "1"}, // malformed separator keeps the first number only
		{"долевая 1 /3 доли", "1/3"},
		{"долевая 1 / 3 доли", "1/3"},
		{"долевая 1  /  3 доли", "1"},
		{"долевая1/9доли", "1/9"},
		{"1/130 доли", "1/130"},
		{"1/2 долевая", "1/2"},
		{"1/234", "1/234"},
		{"1/2доли", "1/2"},
		{"4/5 доли", "4/5"},
		{"596/47200 доли", "596/47200"},
		{"9/10 доли", "9/10"},
		{"долевая", "долевая"},
		{"долевая 3/5", "3/5"},
		{"доли 1/16", "1/16"},
		{"доли 2/3", "2/3"},
		{"доли 361,2 балло-гектар", "361,2"},
		{"доли 639/100000", "639/100000"},
		{"индивидальная", "индивидальная"},
		{"индивидуальная", "индивидуальная"},
		{"индиивидуальная", "индиивидуальная"},
		{"совместная", "совместная"},
		{"срвместная", "срвместная"},
	}

	for _, tt := range tests {
		if result := ExtractFraction(tt.input); result != tt.expected {
			t.Errorf("ExtractFraction(%q) = %q, expected %q", tt.input, result, tt.expected)
		}
	}
}

func TestClassifyOwnership(t *testing.T) {
	tests := []struct {
		input string
		kind  string
		part  *string
	}{
		{"индивидуальная", OwnershipIndividual, nil},
		{"Индивидуальная собственность", OwnershipIndividual, nil},
		{"2/3 доли", OwnershipShared, strPtr("2/3")},
		{"доли 361,2 балло-гектар", OwnershipShared, strPtr("361,2")},
		{"1/2 долевая", OwnershipShared, strPtr("1/2")},
		{"(321/421 доли)", OwnershipShared, strPtr("321/421")},
		{"долевая", OwnershipShared, strPtr("долевая")},
		{"совместная", OwnershipJoint, nil},
		{"общая совместная", OwnershipJoint, nil},
		{"массовая", "массовая", nil},
		// a shared marker wins over an individual one
		{"индивидуальная доля 1/4", OwnershipShared, strPtr("1/4")},
	}

	for _, tt := range tests {
		kind, part := ClassifyOwnership(grid.Text(tt.input))
		if kind == nil || *kind != tt.kind {
			t.Errorf("ClassifyOwnership(%q) kind = %v, expected %q", tt.input, kind, tt.kind)
			continue
		}
		switch {
		case tt.part == nil && part != nil:
			t.Errorf("ClassifyOwnership(%q) part = %q, expected nil", tt.input, *part)
		case tt.part != nil && (part == nil || *part != *tt.part):
			t.Errorf("ClassifyOwnership(%q) part = %v, expected %q", tt.input, part, *tt.part)
		}
	}
}

func TestClassifyOwnershipInvalidInput(t *testing.T) {
	kind, part := ClassifyOwnership(grid.Empty())
	if kind != nil || part != nil {
		t.Errorf("expected (nil, nil) for absent input, got (%v, %v)", kind, part)
	}

	kind, part = ClassifyOwnership(grid.Number(5))
	if kind == nil || *kind != "5" || part != nil {
		t.Errorf("expected (\"5\", nil) for numeric input, got (%v, %v)", kind, part)
	}
}
