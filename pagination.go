package definitions

import (
	"github.com/goliatone/go-definitions/internal/sdl"
)

const (
	PaginationActionInputName = "PaginationActionInput"
	PaginationActionName      = "PaginationAction"
	PaginationName            = "Pagination"
	PaginationActionFragment  = "PaginationActionFull"
	PaginationFragment        = "PaginationFull"
)

func paginationActionFields() []*sdl.FieldDefinition {
	return []*sdl.FieldDefinition{
		{Name: "skip", Type: sdl.NamedType("Int")},
		{Name: "limit", Type: sdl.NamedType("Int")},
	}
}

func commonTypeDefinitions() []sdl.Definition {
	action := sdl.NamedType(PaginationActionName)
	counter := sdl.NonNullType(sdl.NamedType("Int"))
	return []sdl.Definition{
		&sdl.Input{Name: PaginationActionInputName, Fields: paginationActionFields()},
		&sdl.Object{Name: PaginationActionName, Fields: paginationActionFields()},
		&sdl.Object{Name: PaginationName, Fields: []*sdl.FieldDefinition{
			{Name: "previous", Type: action},
			{Name: "next", Type: action},
			{Name: "first", Type: action},
			{Name: "last", Type: action},
			{Name: "total", Type: counter},
			{Name: "currentPage", Type: counter},
			{Name: "totalPages", Type: counter},
		}},
	}
}

func paginationFragmentDefinitions() []sdl.Definition {
	spread := func(name string) *sdl.Field {
		return &sdl.Field{Name: name, Selections: []sdl.Selection{&sdl.Spread{Name: PaginationActionFragment}}}
	}
	return []sdl.Definition{
		&sdl.Fragment{Name: PaginationActionFragment, On: PaginationActionName, Selections: sdl.Select("skip", "limit")},
		&sdl.Fragment{Name: PaginationFragment, On: PaginationName, Selections: append(
			sdl.Select("total", "currentPage", "totalPages"),
			spread("previous"), spread("next"), spread("first"), spread("last"),
		)},
	}
}

// CommonTypeDefs returns the pagination declarations shared by every model. An assembled
// schema must contain them exactly once.
func CommonTypeDefs() string {
	return sdl.Render(commonTypeDefinitions()...)
}

// PaginationFragments returns the PaginationActionFull and PaginationFull fragments used
// by paginated query documents.
func PaginationFragments() string {
	return sdl.Render(paginationFragmentDefinitions()...)
}

// PaginationAction mirrors PaginationActionInput.
type PaginationAction struct {
	Skip  int `json:"skip"`
	Limit int `json:"limit"`
}

// Pagination mirrors the Pagination type. Neighbouring actions are nil when they do not exist.
type Pagination struct {
	Previous    *PaginationAction `json:"previous"`
	Next        *PaginationAction `json:"next"`
	First       *PaginationAction `json:"first"`
	Last        *PaginationAction `json:"last"`
	Total       int               `json:"total"`
	CurrentPage int               `json:"currentPage"`
	TotalPages  int               `json:"totalPages"`
}

// NewPagination computes the Pagination value for a request over total items. Negative
// skips are clamped to zero and skips past the end move to the last page.
func NewPagination(action PaginationAction, total int) Pagination {
	action = normalizePaginationAction(action, total)

	p := Pagination{Total: max(total, 0), CurrentPage: 1, TotalPages: 1}
	if action.Limit <= 0 || total <= 0 {
		return p
	}

	limit := action.Limit
	p.TotalPages = (total + limit - 1) / limit
	p.CurrentPage = action.Skip/limit + 1

	p.First = &PaginationAction{Skip: 0, Limit: limit}
	p.Last = &PaginationAction{Skip: (p.TotalPages - 1) * limit, Limit: limit}
	if p.CurrentPage > 1 {
		p.Previous = &PaginationAction{Skip: max(action.Skip-limit, 0), Limit: limit}
	}
	if p.CurrentPage < p.TotalPages {
		p.Next = &PaginationAction{Skip: action.Skip + limit, Limit: limit}
	}
	return p
}

func normalizePaginationAction(action PaginationAction, count int) PaginationAction {
	if action.Skip < 0 {
		action.Skip = 0
	}
	if action.Limit < 0 {
		action.Limit = 0
	}

	if count <= 0 {
		action.Skip = 0
		return action
	}

	if action.Skip >= count {
		if action.Limit > 0 {
			maxPage := (count + action.Limit - 1) / action.Limit
			action.Skip = (maxPage - 1) * action.Limit
		} else {
			action.Skip = 0
		}
	}
	return action
}
