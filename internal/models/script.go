package models

// Creator identifies the Landscape account that owns a script or
// triggered an execution.
type Creator struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type Script struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Username    string   `json:"username"`
	TimeLimit   int      `json:"time_limit"`
	AccessGroup string   `json:"access_group"`
	Creator     Creator  `json:"creator"`
	Attachments []string `json:"attachments"`
}

// ScriptExecution is the activity record the server returns for an
// ExecuteScript call. CreationTime is kept as the server's string
// representation and never reparsed.
type ScriptExecution struct {
	ID           int     `json:"id"`
	CreationTime string  `json:"creation_time"`
	Creator      Creator `json:"creator"`
	ComputerID   string  `json:"computer_id"`
	ParentID     string  `json:"parent_id"`
	Summary      string  `json:"summary"`
	Type         string  `json:"type"`
}
