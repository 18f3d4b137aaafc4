package router

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNumbers(t *testing.T) {
	t.Parallel()

	got := Numbers("цена 1,5 или 20.25, потом 7")
	if diff := cmp.Diff([]float64{1.5, 20.25, 7}, got); diff != "" {
		t.Fatalf("Numbers() mismatch (-want +got):\n%s", diff)
	}
	if got := Numbers("no digits"); len(got) != 0 {
		t.Fatalf("Numbers() = %v, want empty", got)
	}
}

func TestProductID(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text   string
		want   int
		wantOK bool
	}{
		{text: "discount for id 12", want: 12, wantOK: true},
		{text: "ID42", want: 42, wantOK: true},
		{text: "id: 5", wantOK: false},
		{text: "paid 30", wantOK: false},
		{text: "товарid 7", wantOK: false},
		{text: "discount for id 99999999999999999999999", want: MaxProductID, wantOK: true},
		{text: "id 9007199254740993", want: MaxProductID, wantOK: true},
	}
	for _, tc := range cases {
		got, ok := ProductID(tc.text)
		if ok != tc.wantOK || got != tc.want {
			t.Fatalf("ProductID(%q) = %d,%v want %d,%v", tc.text, got, ok, tc.want, tc.wantOK)
		}
	}
}

func TestCategory(t *testing.T) {
	t.Parallel()

	cases := []struct {
		text string
		want string
	}{
		{text: "товары в категории электроника", want: "электроника"},
		{text: "show category Home Goods, please", want: "Home Goods"},
		{text: "categories   books\nand more", want: "books"},
		{text: "no keyword here", want: ""},
	}
	for _, tc := range cases {
		if got := Category(tc.text); got != tc.want {
			t.Fatalf("Category(%q) = %q, want %q", tc.text, got, tc.want)
		}
	}
}

func TestExtractAddFieldsCategoryWithoutValueFallsBack(t *testing.T) {
	t.Parallel()

	got := ExtractAddFields("добавь: Стол, категория, цена 10")
	want := AddFields{Name: "Стол", Price: 10, Category: DefaultCategory, InStock: true}
	if got != want {
		t.Fatalf("ExtractAddFields() = %#v, want %#v", got, want)
	}
}

func TestExtractAddFieldsWithoutColonUsesWholeText(t *testing.T) {
	t.Parallel()

	got := ExtractAddFields("добавь Стул нет в наличии")
	if got.Name != "добавь Стул нет в наличии" || got.InStock {
		t.Fatalf("ExtractAddFields() = %#v", got)
	}
}

func TestClassifyPriority(t *testing.T) {
	t.Parallel()

	cases := map[string]Intent{
		"добавь товар в категорию": IntentAdd,
		"электроника со скидкой":   IntentList,
		"цена со скидкой":          IntentStats,
		"скидка 10":                IntentDiscount,
		"привет":                   IntentNone,
	}
	for text, want := range cases {
		if got := Classify(text); got != want {
			t.Fatalf("Classify(%q) = %s, want %s", text, got, want)
		}
	}
}
