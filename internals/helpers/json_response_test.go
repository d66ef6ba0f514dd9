package helper

import "testing"

func TestBuildPaginationFromPage(t *testing.T) {
	tests := []struct {
		name    string
		total   int64
		page    int
		perPage int
		want    Pagination
	}{
		{
			name: "middle page", total: 45, page: 2, perPage: 20,
			want: Pagination{Page: 2, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: true},
		},
		{
			name: "first page", total: 45, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 45, TotalPages: 3, HasNext: true, HasPrev: false},
		},
		{
			name: "last page", total: 45, page: 3, perPage: 20,
			want: Pagination{Page: 3, PerPage: 20, Total: 45, TotalPages: 3, HasNext: false, HasPrev: true},
		},
		{
			name: "empty result still one page", total: 0, page: 1, perPage: 20,
			want: Pagination{Page: 1, PerPage: 20, Total: 0, TotalPages: 1, HasNext: false, HasPrev: false},
		},
		{
			name: "bad inputs normalized", total: 5, page: 0, perPage: 0,
			want: Pagination{Page: 1, PerPage: 20, Total: 5, TotalPages: 1, HasNext: false, HasPrev: false},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := BuildPaginationFromPage(tt.total, tt.page, tt.perPage); got != tt.want {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestLenOf(t *testing.T) {
	if got := lenOf([]int{1, 2, 3}); got != 3 {
		t.Errorf("lenOf(slice) = %d, want 3", got)
	}
	if got := lenOf(nil); got != 0 {
		t.Errorf("lenOf(nil) = %d, want 0", got)
	}
	if got := lenOf(42); got != 0 {
		t.Errorf("lenOf(int) = %d, want 0", got)
	}
}
