package pagination

const (
	// DefaultPage is the first page when none is requested.
	DefaultPage = 1
	// DefaultLimit is the standard page size when a limit is not provided.
	DefaultLimit = 10
)

// Params holds offset pagination inputs from controllers or services.
type Params struct {
	Page  int
	Limit int
}

// Normalize substitutes the defaults for zero or negative inputs. There is
// no upper bound on limit; callers that want every row may ask for it.
func Normalize(p Params) Params {
	if p.Page <= 0 {
		p.Page = DefaultPage
	}
	if p.Limit <= 0 {
		p.Limit = DefaultLimit
	}
	return p
}

// Offset returns how many rows to skip for the normalized params.
func (p Params) Offset() int {
	return (p.Page - 1) * p.Limit
}

// TotalPages computes ceil(total/limit), with zero totals yielding zero pages.
func TotalPages(total int64, limit int) int64 {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return (total + int64(limit) - 1) / int64(limit)
}
