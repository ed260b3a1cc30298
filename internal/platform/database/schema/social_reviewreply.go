package schema

// SocialReviewReplyTable represents the 'social.reviewreply' table
type SocialReviewReplyTable struct {
	Table       string
	ID          string
	ReviewID    string
	AuthorID    string
	DisplayName string
	Comment     string
	CreatedAt   string
}

// SocialReviewReply is the schema definition for social.reviewreply
var SocialReviewReply = SocialReviewReplyTable{
	Table:       "social.reviewreply",
	ID:          "id",
	ReviewID:    "reviewid",
	AuthorID:    "authorid",
	DisplayName: "displayname",
	Comment:     "comment",
	CreatedAt:   "createdat",
}
