package main

import (
	"context"
	"fmt"
	"time"

	"formforge/internal/config"
	"formforge/internal/logx"
	"formforge/internal/model"
	"formforge/internal/repository"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"golang.org/x/crypto/bcrypt"
)

func floatPtr(f float64) *float64 { return &f }

func main() {
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
	if err != nil {
		logx.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer client.Disconnect(ctx)

	db := client.Database(cfg.MongoDB)
	userRepo := repository.NewUserRepo(db)
	formRepo := repository.NewFormRepo(db)

	hash, err := bcrypt.GenerateFromPassword([]byte("demo1234"), bcrypt.DefaultCost)
	if err != nil {
		logx.Fatalf("bcrypt: %v", err)
	}

	userID, err := userRepo.Create(ctx, &model.User{
		Name:         "Demo User",
		Email:        "demo@formforge.dev",
		PasswordHash: string(hash),
	})
	if err != nil {
		logx.Fatalf("Failed to seed user: %v", err)
	}

	form := &model.Form{
		OwnerID:     userID,
		Title:       "Event Feedback",
		Description: "Tell us how the event went.",
		Questions: []model.Question{
			{
				ID:       "nameField_demo1",
				Type:     model.QuestionNameField,
				Label:    "Your name",
				Required: true,
			},
			{
				ID:       "starRating_demo2",
				Type:     model.QuestionStarRating,
				Label:    "How would you rate the event?",
				Required: true,
				Meta:     model.Meta{MaxStars: 5},
				Conditional: model.Conditional{
					Enabled: true,
					Rules: []model.Rule{
						{
							ID:       "rule_low_rating",
							Operator: model.OpLessEqual,
							Value:    "2",
							Targets:  []string{"longText_demo3"},
						},
					},
				},
			},
			{
				ID:    "longText_demo3",
				Type:  model.QuestionLongText,
				Label: "What went wrong?",
			},
			{
				ID:    "singleSelect_demo4",
				Type:  model.QuestionSingleSel,
				Label: "Would you attend again?",
				Meta:  model.Meta{Options: []string{"Yes", "No", "Maybe"}},
			},
			{
				ID:    "sliderScale_demo5",
				Type:  model.QuestionSliderScale,
				Label: "How likely are you to recommend us?",
				Meta:  model.Meta{Min: floatPtr(0), Max: floatPtr(10)},
			},
		},
	}

	formID, err := formRepo.Create(ctx, form)
	if err != nil {
		logx.Fatalf("Failed to seed form: %v", err)
	}

	fmt.Printf("Seeded user %s (demo@formforge.dev / demo1234)\n", userID)
	fmt.Printf("Seeded form %s\n", formID)
}
