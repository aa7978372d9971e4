package memory

import (
	"sync"
	"time"

	"github.com/donorlink/backend/internal/domain/account"
	"github.com/donorlink/backend/internal/domain/donation"
	"github.com/donorlink/backend/internal/domain/requirement"
	"github.com/donorlink/backend/internal/domain/shared"
	"github.com/google/uuid"
)

// Fixture ids are stable so clients and tests can reference them
var (
	SeedNGOHelpingHandsID  = uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6b01")
	SeedNGOFoodForAllID    = uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6b02")
	SeedDonorID            = uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6c01")
	SeedRequirementBooksID = uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6d01")
	SeedRequirementRiceID  = uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6d02")
)

// SeedPassword is the password of every fixture account
const SeedPassword = "password123"

var seedPasswordHash = sync.OnceValue(func() string {
	hash, err := account.HashPassword(SeedPassword)
	if err != nil {
		panic(err)
	}
	return hash
})

var seedEpoch = time.Date(2025, 1, 15, 9, 0, 0, 0, time.UTC)

type fixtureSet struct {
	users        []*account.User
	donations    []*donation.Donation
	requirements []*requirement.Requirement
}

func entity(id uuid.UUID, offset time.Duration) shared.BaseEntity {
	at := seedEpoch.Add(offset)
	return shared.BaseEntity{ID: id, CreatedAt: at, UpdatedAt: at}
}

func fixtures() fixtureSet {
	hash := seedPasswordHash()
	amount := 5000.0
	qty := 200.0
	books := 500.0

	helpingHands := &account.User{
		BaseEntity:   entity(SeedNGOHelpingHandsID, 0),
		Email:        "contact@helpinghands.org",
		PasswordHash: hash,
		Type:         account.UserTypeNGO,
		Verified:     true,
		Profile: account.Profile{
			Name:        "Helping Hands Foundation",
			Phone:       "+91-9876543210",
			City:        "Mumbai",
			State:       "Maharashtra",
			Country:     "India",
			Description: "Education and livelihood support for underprivileged children.",
			Website:     "https://helpinghands.example.org",
		},
		NGO: account.NGODetails{
			About:     "Running after-school learning centres since 2008.",
			WorksDone: "12 learning centres, 3000+ students supported.",
			Gallery:   []string{},
		},
		ConnectedDonors: []uuid.UUID{SeedDonorID},
		ConnectedNGOs:   []uuid.UUID{},
	}

	foodForAll := &account.User{
		BaseEntity:   entity(SeedNGOFoodForAllID, time.Hour),
		Email:        "hello@foodforall.org",
		PasswordHash: hash,
		Type:         account.UserTypeNGO,
		Verified:     true,
		Profile: account.Profile{
			Name:        "Food For All",
			City:        "Bengaluru",
			State:       "Karnataka",
			Country:     "India",
			Description: "Community kitchens serving daily meals.",
		},
		NGO: account.NGODetails{
			About:   "Daily meals for 1,500 people across five kitchens.",
			Gallery: []string{},
		},
		ConnectedDonors: []uuid.UUID{},
		ConnectedNGOs:   []uuid.UUID{},
	}

	donor := &account.User{
		BaseEntity:   entity(SeedDonorID, 2*time.Hour),
		Email:        "donor@example.com",
		PasswordHash: hash,
		Type:         account.UserTypeDonor,
		Profile: account.Profile{
			Name:    "Ravi Kumar",
			City:    "Pune",
			Country: "India",
		},
		ConnectedNGOs:   []uuid.UUID{SeedNGOHelpingHandsID},
		ConnectedDonors: []uuid.UUID{},
	}

	return fixtureSet{
		users: []*account.User{helpingHands, foodForAll, donor},
		donations: []*donation.Donation{
			{
				BaseEntity:    entity(uuid.MustParse("6f1c2a8e-0b7d-4c1e-9a51-2d3f4e5a6e01"), 24*time.Hour),
				DonorID:       SeedDonorID,
				NGOID:         SeedNGOHelpingHandsID,
				Type:          donation.TypeMoney,
				Amount:        &amount,
				Currency:      "INR",
				PaymentMethod: "upi",
				Message:       "For the learning centres",
				Status:        donation.StatusCompleted,
			},
		},
		requirements: []*requirement.Requirement{
			{
				BaseEntity:  entity(SeedRequirementBooksID, 3*time.Hour),
				NGOID:       SeedNGOHelpingHandsID,
				Title:       "School Books for Grade 5",
				Description: "Textbooks and notebooks for the new academic year.",
				Category:    "education",
				RequestType: "items",
				Currency:    "INR",
				Priority:    requirement.PriorityHigh,
				Status:      requirement.StatusActive,
				Quantity:    &books,
				Unit:        "books",
			},
			{
				BaseEntity:  entity(SeedRequirementRiceID, 4*time.Hour),
				NGOID:       SeedNGOFoodForAllID,
				Title:       "Rice for Community Kitchen",
				Description: "Monthly rice stock for the Koramangala kitchen.",
				Category:    "food",
				RequestType: "items",
				Currency:    "INR",
				Priority:    requirement.PriorityMedium,
				Status:      requirement.StatusActive,
				Quantity:    &qty,
				Unit:        "kg",
			},
		},
	}
}
