package dto

// TaskRequest is the body of a task create or full update. It binds from
// JSON or from an HTML form.
type TaskRequest struct {
	Title     string   `json:"title" form:"title"`
	Notes     string   `json:"notes" form:"notes"`
	Status    string   `json:"status" form:"status"`
	Priority  string   `json:"priority" form:"priority"`
	DueDate   string   `json:"due_date" form:"dueDate"`
	ProjectID string   `json:"project_id" form:"projectId"`
	TagIDs    []string `json:"tag_ids" form:"tagIds"`
}

type TaskStatusRequest struct {
	Status string `json:"status" form:"status"`
}

type ProjectRequest struct {
	Name string `json:"name" form:"name"`
}

type TagRequest struct {
	Name string `json:"name" form:"name"`
}
