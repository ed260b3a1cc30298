package schema

// ModFlagTable represents the 'mod.flag' table
type ModFlagTable struct {
	Table         string
	ID            string
	TargetKind    string
	TargetID      string
	TitleSnapshot string
	Reason        string
	Snippet       string
	ReporterID    string
	Status        string
	HandledBy     string
	HandledAt     string
	ActionNote    string
	CreatedAt     string
}

// ModFlag is the schema definition for mod.flag
var ModFlag = ModFlagTable{
	Table:         "mod.flag",
	ID:            "id",
	TargetKind:    "targetkind",
	TargetID:      "targetid",
	TitleSnapshot: "titlesnapshot",
	Reason:        "reason",
	Snippet:       "snippet",
	ReporterID:    "reporterid",
	Status:        "status",
	HandledBy:     "handledby",
	HandledAt:     "handledat",
	ActionNote:    "actionnote",
	CreatedAt:     "createdat",
}
