package corpus

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFullText(t *testing.T) {
	tests := []struct {
		name string
		doc  Document
		want string
	}{
		{
			name: "title and abstract",
			doc:  Document{Title: "A Title", Abstract: "An abstract."},
			want: "A Title An abstract.",
		},
		{
			name: "missing abstract",
			doc:  Document{Title: "A Title"},
			want: "A Title",
		},
		{
			name: "missing title",
			doc:  Document{Abstract: "An abstract."},
			want: "An abstract.",
		},
		{
			name: "both missing",
			doc:  Document{},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.doc.FullText(); got != tt.want {
				t.Errorf("FullText() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestYearSpan(t *testing.T) {
	docs := []Document{
		{ID: "a", Year: 2012},
		{ID: "b", Year: 2010},
		{ID: "c", Year: 2014},
	}

	years, err := YearSpan(docs)
	if err != nil {
		t.Fatalf("YearSpan() error = %v", err)
	}

	// Gap years 2011 and 2013 must be included
	want := []int{2010, 2011, 2012, 2013, 2014}
	if !reflect.DeepEqual(years, want) {
		t.Errorf("YearSpan() = %v, want %v", years, want)
	}
}

func TestYearSpanEmpty(t *testing.T) {
	if _, err := YearSpan(nil); err != ErrEmptyCorpus {
		t.Errorf("YearSpan(nil) error = %v, want ErrEmptyCorpus", err)
	}
}

func TestCountByYear(t *testing.T) {
	docs := []Document{
		{ID: "a", Year: 2010},
		{ID: "b", Year: 2010},
		{ID: "c", Year: 2012},
	}

	counts := CountByYear(docs)
	want := map[int]int{2010: 2, 2011: 0, 2012: 1}
	if !reflect.DeepEqual(counts, want) {
		t.Errorf("CountByYear() = %v, want %v", counts, want)
	}
}

func TestFilterMatch(t *testing.T) {
	filter := Filter{
		Topics:    []string{"computer vision"},
		StartYear: 2010,
		EndYear:   2022,
	}

	tests := []struct {
		name string
		doc  Document
		want bool
	}{
		{
			name: "topic in abstract",
			doc:  Document{Year: 2015, Abstract: "Advances in Computer Vision methods."},
			want: true,
		},
		{
			name: "topic in title",
			doc:  Document{Year: 2015, Title: "A computer vision survey"},
			want: true,
		},
		{
			name: "no topic",
			doc:  Document{Year: 2015, Abstract: "Number theory results."},
			want: false,
		},
		{
			name: "year too early",
			doc:  Document{Year: 2009, Abstract: "computer vision"},
			want: false,
		},
		{
			name: "year too late",
			doc:  Document{Year: 2023, Abstract: "computer vision"},
			want: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := filter.Match(tt.doc); got != tt.want {
				t.Errorf("Match() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFilterMatchNoTopics(t *testing.T) {
	filter := Filter{StartYear: 2010, EndYear: 2022}
	doc := Document{Year: 2015, Abstract: "anything at all"}
	if !filter.Match(doc) {
		t.Error("empty topic list should match every in-range document")
	}
}

func TestReadMetadataDump(t *testing.T) {
	dump := `{"id":"1001.0001","update_date":"2010-03-01","title":"Vision paper","abstract":"About computer vision."}
{"id":"1101.0002","update_date":"2011-05-12","title":"Other paper","abstract":"About algebra."}
{"id":"1201.0003","update_date":"2012-01-30","title":"Second vision paper","abstract":"More computer vision."}
{"id":"bad-date","update_date":"??","title":"Broken","abstract":"computer vision"}
`
	path := filepath.Join(t.TempDir(), "dump.jsonl")
	if err := os.WriteFile(path, []byte(dump), 0644); err != nil {
		t.Fatalf("writing dump: %v", err)
	}

	filter := Filter{Topics: []string{"computer vision"}, StartYear: 2010, EndYear: 2022}
	docs, err := ReadMetadataDump(path, filter)
	if err != nil {
		t.Fatalf("ReadMetadataDump() error = %v", err)
	}

	if len(docs) != 2 {
		t.Fatalf("got %d documents, want 2", len(docs))
	}
	if docs[0].ID != "1001.0001" || docs[0].Year != 2010 {
		t.Errorf("first doc = %+v", docs[0])
	}
	if docs[1].ID != "1201.0003" || docs[1].Year != 2012 {
		t.Errorf("second doc = %+v", docs[1])
	}
}

func TestReadMetadataDumpMissing(t *testing.T) {
	_, err := ReadMetadataDump(filepath.Join(t.TempDir(), "nope.jsonl"), Filter{})
	if err == nil {
		t.Error("expected error for missing dump file")
	}
}
