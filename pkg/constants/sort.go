package constants

type SortField string

const (
	SortByCreatedAt SortField = "createdAt"
	SortByPriority  SortField = "priority"
	SortByDueDate   SortField = "dueDate"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByPriority, SortByDueDate:
		return true
	}
	return false
}

type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

func (d SortDirection) Valid() bool {
	return d == SortAsc || d == SortDesc
}
