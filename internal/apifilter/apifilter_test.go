package apifilter_test

import (
	"net/url"
	"testing"

	"github.com/techBikashRepo/jobbee-api/internal/apifilter"
)

func conditions(t *testing.T, query string) []apifilter.Condition {
	t.Helper()
	params, err := url.ParseQuery(query)
	if err != nil {
		t.Fatalf("ParseQuery(%q): %v", query, err)
	}
	return apifilter.New(params).Conditions()
}

func TestConditions_ReservedParamsNeverFilter(t *testing.T) {
	conds := conditions(t, "sort=salary&fields=title&q=node&limit=5&page=2")
	if len(conds) != 0 {
		t.Errorf("reserved params produced %d conditions, want 0: %+v", len(conds), conds)
	}
}

func TestConditions_EqualityAndComparison(t *testing.T) {
	conds := conditions(t, "salary[gte]=50000&job_type=Permanent")

	if len(conds) != 2 {
		t.Fatalf("got %d conditions, want 2: %+v", len(conds), conds)
	}
	// Keys are applied in sorted order.
	if conds[0].Column != "job_type" || conds[0].Operator != "=" || conds[0].Value != "Permanent" {
		t.Errorf("equality condition = %+v", conds[0])
	}
	if conds[1].Column != "salary" || conds[1].Operator != ">=" {
		t.Errorf("gte condition = %+v", conds[1])
	}
	if conds[1].Value != int64(50000) {
		t.Errorf("gte value = %v (%T), want int64 50000", conds[1].Value, conds[1].Value)
	}
}

func TestConditions_OperatorAllowList(t *testing.T) {
	cases := []struct {
		op   string
		want string
	}{
		{"gt", ">"},
		{"gte", ">="},
		{"lt", "<"},
		{"lte", "<="},
	}
	for _, c := range cases {
		conds := conditions(t, "positions["+c.op+"]=3")
		if len(conds) != 1 {
			t.Fatalf("op %s: got %d conditions, want 1", c.op, len(conds))
		}
		if conds[0].Operator != c.want {
			t.Errorf("op %s mapped to %q, want %q", c.op, conds[0].Operator, c.want)
		}
	}
}

func TestConditions_UnknownOperatorDropped(t *testing.T) {
	conds := conditions(t, "salary[regex]=50000")
	if len(conds) != 0 {
		t.Errorf("unknown operator produced conditions: %+v", conds)
	}
}

func TestConditions_InSplitsValues(t *testing.T) {
	conds := conditions(t, "job_type[in]=Permanent,Internship")
	if len(conds) != 1 {
		t.Fatalf("got %d conditions, want 1", len(conds))
	}
	vals, ok := conds[0].Value.([]interface{})
	if !ok {
		t.Fatalf("IN value type = %T, want []interface{}", conds[0].Value)
	}
	if len(vals) != 2 || vals[0] != "Permanent" || vals[1] != "Internship" {
		t.Errorf("IN values = %v", vals)
	}
}

func TestConditions_CamelCaseBecomesSnakeCase(t *testing.T) {
	conds := conditions(t, "jobType=Permanent")
	if len(conds) != 1 || conds[0].Column != "job_type" {
		t.Errorf("conditions = %+v, want job_type column", conds)
	}
}

func TestConditions_HostileKeyNeverInterpolated(t *testing.T) {
	conds := conditions(t, url.QueryEscape("salary;DROP TABLE jobs")+"=1")
	if len(conds) != 0 {
		t.Errorf("hostile key produced conditions: %+v", conds)
	}
}

func TestOrderClauses_DefaultSort(t *testing.T) {
	params, _ := url.ParseQuery("")
	got := apifilter.New(params).OrderClauses()
	if len(got) != 1 || got[0] != "posting_date DESC" {
		t.Errorf("default order = %v, want [posting_date DESC]", got)
	}
}

func TestOrderClauses_CompoundSort(t *testing.T) {
	params, _ := url.ParseQuery("sort=salary,-posting_date")
	got := apifilter.New(params).OrderClauses()
	if len(got) != 2 || got[0] != "salary ASC" || got[1] != "posting_date DESC" {
		t.Errorf("order = %v", got)
	}
}

func TestSelectedFields(t *testing.T) {
	params, _ := url.ParseQuery("fields=title,salary,jobType")
	got := apifilter.New(params).SelectedFields()
	want := []string{"title", "salary", "job_type"}
	if len(got) != len(want) {
		t.Fatalf("fields = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("fields[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectedFields_AbsentMeansAll(t *testing.T) {
	params, _ := url.ParseQuery("")
	if got := apifilter.New(params).SelectedFields(); got != nil {
		t.Errorf("fields = %v, want nil", got)
	}
}

func TestSearchPhrase_HyphensBecomeSpaces(t *testing.T) {
	params, _ := url.ParseQuery("q=node-js-developer")
	phrase, ok := apifilter.New(params).SearchPhrase()
	if !ok {
		t.Fatal("SearchPhrase reported absent")
	}
	if phrase != "node js developer" {
		t.Errorf("phrase = %q, want %q", phrase, "node js developer")
	}
}

func TestSearchPhrase_Absent(t *testing.T) {
	params, _ := url.ParseQuery("limit=5")
	if _, ok := apifilter.New(params).SearchPhrase(); ok {
		t.Error("SearchPhrase reported present for missing q")
	}
}

func TestPagination(t *testing.T) {
	cases := []struct {
		query  string
		page   int
		limit  int
		offset int
	}{
		{"", 1, 10, 0},
		{"page=2&limit=5", 2, 5, 5},
		{"page=0", 1, 10, 0},
		{"page=-3", 1, 10, 0},
		{"page=abc", 1, 10, 0},
		{"limit=0", 1, 10, 0},
		{"page=3&limit=20", 3, 20, 40},
	}
	for _, c := range cases {
		params, _ := url.ParseQuery(c.query)
		page, limit, offset := apifilter.New(params).Pagination()
		if page != c.page || limit != c.limit || offset != c.offset {
			t.Errorf("Pagination(%q) = (%d, %d, %d), want (%d, %d, %d)",
				c.query, page, limit, offset, c.page, c.limit, c.offset)
		}
	}
}
