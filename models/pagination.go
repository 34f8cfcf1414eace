package models

// PaginationInfo describes the position of a page of messages. Offset
// requests populate Page/PageSize/TotalPages; cursor requests populate
// NextCursor (zero when the result set is exhausted). HasMore is set in
// both modes.
type PaginationInfo struct {
	Page       int  `json:"page,omitempty"`
	PageSize   int  `json:"pageSize"`
	TotalPages int  `json:"totalPages,omitempty"`
	HasMore    bool `json:"hasMore"`
	NextCursor uint `json:"nextCursor,omitempty"`
}
