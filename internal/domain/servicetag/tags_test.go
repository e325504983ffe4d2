package servicetag

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"strings"
	"testing"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		text string
		want TagSet
	}{
		{
			text: "Private Kitesurf Lesson - Beginner",
			want: TagSet{Discipline: []string{Kitesurf}, Level: []string{Beginner}, Category: []string{Lesson}},
		},
		{
			text: "Kite surf discovery pack",
			want: TagSet{Discipline: []string{Kitesurf}, Level: []string{Beginner}, Category: []string{Package}},
		},
		{
			text: "Wing Foil intermediate group course",
			want: TagSet{Discipline: []string{Wingfoil}, Level: []string{Intermediate}, Category: []string{Lesson}},
		},
		{
			text: "E-Foil rental 1h",
			want: TagSet{Discipline: []string{Efoil}, Level: []string{}, Category: []string{Rental}},
		},
		{
			text: "SUP board hire",
			want: TagSet{Discipline: []string{SUP}, Level: []string{}, Category: []string{Rental}},
		},
		{
			text: "Surf lesson",
			want: TagSet{Discipline: []string{Surf}, Level: []string{}, Category: []string{Lesson}},
		},
		{
			text: "Windsurfing supervision (advanced riders)",
			want: TagSet{Discipline: []string{Windsurf}, Level: []string{Advanced}, Category: []string{Supervision}},
		},
		{
			text: "Gift voucher",
			want: TagSet{Discipline: []string{}, Level: []string{}, Category: []string{}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got := Classify(tt.text)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Classify(%q) = %+v, want %+v", tt.text, got, tt.want)
			}
		})
	}
}

func TestClassify_WholeWordsOnly(t *testing.T) {
	// "kitesurf" must not also read as "surf", "progression" must not read as "pro"
	got := Classify("Kitesurf progression")
	if got.Has(DimensionDiscipline, Surf) {
		t.Fatal("kitesurf should not produce a surf tag")
	}
	if got.Has(DimensionLevel, Advanced) {
		t.Fatal("progression should not produce an advanced tag")
	}
	if !got.Has(DimensionLevel, Intermediate) {
		t.Fatal("expected intermediate from progression")
	}
	if !Classify("").Empty() {
		t.Fatal("expected empty set for empty text")
	}
}

func TestMatches(t *testing.T) {
	tests := []struct {
		pkg, svc string
		want     bool
	}{
		{"10h Kitesurf Beginner Package", "Private Kitesurf Lesson Beginner", true},
		{"10h Kitesurf Package", "Wing Foil Lesson", false},
		{"Kitesurf Beginner Package", "Kitesurf Advanced Lesson", false},
		{"Kitesurf Lesson Package", "Kitesurf Rental", false},
		{"Kitesurf Package", "Kitesurf Rental", true},
		{"Multi-sport package", "Efoil lesson", true},
		{"Kite + Wing package", "Wing foil lesson", true},
	}

	for _, tt := range tests {
		if got := Matches(tt.pkg, tt.svc); got != tt.want {
			t.Errorf("Matches(%q, %q) = %v, want %v", tt.pkg, tt.svc, got, tt.want)
		}
	}
}

func TestHandlerClassify(t *testing.T) {
	r := NewHandler().Routes(func(next http.Handler) http.Handler { return next })

	t.Run("with service", func(t *testing.T) {
		body := `{"text":"Kitesurf beginner package","service":"Kitesurf beginner lesson"}`
		req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(body))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)

		if rr.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rr.Code, rr.Body.String())
		}
		var env struct {
			Data ClassifyResponse `json:"data"`
		}
		if err := json.Unmarshal(rr.Body.Bytes(), &env); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if env.Data.Matches == nil || !*env.Data.Matches {
			t.Fatalf("expected matches=true, got %s", rr.Body.String())
		}
		if !env.Data.Tags.Has(DimensionCategory, Package) {
			t.Fatalf("expected package category, got %+v", env.Data.Tags)
		}
	})

	t.Run("missing text", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader(`{}`))
		rr := httptest.NewRecorder()
		r.ServeHTTP(rr, req)
		if rr.Code != http.StatusUnprocessableEntity {
			t.Fatalf("expected 422, got %d", rr.Code)
		}
	})
}
