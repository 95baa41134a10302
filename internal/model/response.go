package model

import (
	"encoding/json"
	"time"

	"go.mongodb.org/mongo-driver/bson"
)

// Answer is one (question, value) pair inside a response.
type Answer struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	Value      AnswerValue `json:"value" bson:"value"`
}

// answerAlias tolerates the legacy "id" key that pre-migration records used
// for the question reference. It is normalized to QuestionID here, on decode,
// so no read path ever has to check both keys.
type answerAlias struct {
	QuestionID string      `json:"questionId" bson:"questionId"`
	LegacyID   string      `json:"id" bson:"id"`
	Value      AnswerValue `json:"value" bson:"value"`
}

func (a *Answer) UnmarshalJSON(data []byte) error {
	var raw answerAlias
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.QuestionID = raw.QuestionID
	if a.QuestionID == "" {
		a.QuestionID = raw.LegacyID
	}
	a.Value = raw.Value
	return nil
}

func (a *Answer) UnmarshalBSON(data []byte) error {
	var raw answerAlias
	if err := bson.Unmarshal(data, &raw); err != nil {
		return err
	}
	a.QuestionID = raw.QuestionID
	if a.QuestionID == "" {
		a.QuestionID = raw.LegacyID
	}
	a.Value = raw.Value
	return nil
}

// Response is one respondent's submission to a form. It is created once by an
// anonymous submission and never edited; it only disappears when the parent
// form is deleted.
type Response struct {
	ID          string    `json:"id" bson:"_id,omitempty"`
	FormID      string    `json:"formId" bson:"formId"`
	Answers     []Answer  `json:"answers" bson:"answers"`
	SubmittedAt time.Time `json:"submittedAt" bson:"submittedAt"`
}
