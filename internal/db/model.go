// nolint
//
//lint:file-ignore U1000 ignore unused code, it's generated
package db

import (
	"time"
)

var Columns = struct {
	Article struct {
		ID, Title, Slug, Excerpt, Content, FeaturedImage, CategoryID, AuthorID, PublishedAt, ReadingTime, Views, IsFeatured, IsBreaking, CreatedAt, UpdatedAt string

		Category, Author string
	}
	ArticleLike struct {
		ID, ArticleID, SubscriberID, CreatedAt string
	}
	Author struct {
		ID, Name, Bio, AvatarURL, CreatedAt string
	}
	Category struct {
		ID, Name, Slug, Description, CreatedAt string
	}
	Comment struct {
		ID, ArticleID, SubscriberID, Content, IsApproved, CreatedAt string

		Article, Subscriber string
	}
	GooseDbVersion struct {
		ID, VersionID, IsApplied, Tstamp string
	}
	Poll struct {
		ID, Title, Description, Type, Status, ShowResults, EndDate, CreatedAt string

		Options string
	}
	PollOption struct {
		ID, PollID, Title, Description, ImageURL, VotesCount, OrderNumber string
	}
	PollVote struct {
		ID, PollID, OptionID, Phone, CreatedAt string
	}
	Subscriber struct {
		ID, Email, Name, SubscribedAt, UnsubscribedAt string
	}
}{
	Article: struct {
		ID, Title, Slug, Excerpt, Content, FeaturedImage, CategoryID, AuthorID, PublishedAt, ReadingTime, Views, IsFeatured, IsBreaking, CreatedAt, UpdatedAt string

		Category, Author string
	}{
		ID:            "id",
		Title:         "title",
		Slug:          "slug",
		Excerpt:       "excerpt",
		Content:       "content",
		FeaturedImage: "featuredImage",
		CategoryID:    "categoryId",
		AuthorID:      "authorId",
		PublishedAt:   "publishedAt",
		ReadingTime:   "readingTime",
		Views:         "views",
		IsFeatured:    "isFeatured",
		IsBreaking:    "isBreaking",
		CreatedAt:     "createdAt",
		UpdatedAt:     "updatedAt",

		Category: "Category",
		Author:   "Author",
	},
	ArticleLike: struct {
		ID, ArticleID, SubscriberID, CreatedAt string
	}{
		ID:           "id",
		ArticleID:    "articleId",
		SubscriberID: "subscriberId",
		CreatedAt:    "createdAt",
	},
	Author: struct {
		ID, Name, Bio, AvatarURL, CreatedAt string
	}{
		ID:        "id",
		Name:      "name",
		Bio:       "bio",
		AvatarURL: "avatarUrl",
		CreatedAt: "createdAt",
	},
	Category: struct {
		ID, Name, Slug, Description, CreatedAt string
	}{
		ID:          "id",
		Name:        "name",
		Slug:        "slug",
		Description: "description",
		CreatedAt:   "createdAt",
	},
	Comment: struct {
		ID, ArticleID, SubscriberID, Content, IsApproved, CreatedAt string

		Article, Subscriber string
	}{
		ID:           "id",
		ArticleID:    "articleId",
		SubscriberID: "subscriberId",
		Content:      "content",
		IsApproved:   "isApproved",
		CreatedAt:    "createdAt",

		Article:    "Article",
		Subscriber: "Subscriber",
	},
	GooseDbVersion: struct {
		ID, VersionID, IsApplied, Tstamp string
	}{
		ID:        "id",
		VersionID: "version_id",
		IsApplied: "is_applied",
		Tstamp:    "tstamp",
	},
	Poll: struct {
		ID, Title, Description, Type, Status, ShowResults, EndDate, CreatedAt string

		Options string
	}{
		ID:          "id",
		Title:       "title",
		Description: "description",
		Type:        "type",
		Status:      "status",
		ShowResults: "showResults",
		EndDate:     "endDate",
		CreatedAt:   "createdAt",

		Options: "Options",
	},
	PollOption: struct {
		ID, PollID, Title, Description, ImageURL, VotesCount, OrderNumber string
	}{
		ID:          "id",
		PollID:      "pollId",
		Title:       "title",
		Description: "description",
		ImageURL:    "imageUrl",
		VotesCount:  "votesCount",
		OrderNumber: "orderNumber",
	},
	PollVote: struct {
		ID, PollID, OptionID, Phone, CreatedAt string
	}{
		ID:        "id",
		PollID:    "pollId",
		OptionID:  "optionId",
		Phone:     "phone",
		CreatedAt: "createdAt",
	},
	Subscriber: struct {
		ID, Email, Name, SubscribedAt, UnsubscribedAt string
	}{
		ID:             "id",
		Email:          "email",
		Name:           "name",
		SubscribedAt:   "subscribedAt",
		UnsubscribedAt: "unsubscribedAt",
	},
}

var Tables = struct {
	Article struct {
		Name, Alias string
	}
	ArticleLike struct {
		Name, Alias string
	}
	Author struct {
		Name, Alias string
	}
	Category struct {
		Name, Alias string
	}
	Comment struct {
		Name, Alias string
	}
	GooseDbVersion struct {
		Name, Alias string
	}
	Poll struct {
		Name, Alias string
	}
	PollOption struct {
		Name, Alias string
	}
	PollVote struct {
		Name, Alias string
	}
	Subscriber struct {
		Name, Alias string
	}
}{
	Article: struct {
		Name, Alias string
	}{
		Name:  "articles",
		Alias: "t",
	},
	ArticleLike: struct {
		Name, Alias string
	}{
		Name:  "articleLikes",
		Alias: "t",
	},
	Author: struct {
		Name, Alias string
	}{
		Name:  "authors",
		Alias: "t",
	},
	Category: struct {
		Name, Alias string
	}{
		Name:  "categories",
		Alias: "t",
	},
	Comment: struct {
		Name, Alias string
	}{
		Name:  "comments",
		Alias: "t",
	},
	GooseDbVersion: struct {
		Name, Alias string
	}{
		Name:  "goose_db_version",
		Alias: "t",
	},
	Poll: struct {
		Name, Alias string
	}{
		Name:  "polls",
		Alias: "t",
	},
	PollOption: struct {
		Name, Alias string
	}{
		Name:  "pollOptions",
		Alias: "t",
	},
	PollVote: struct {
		Name, Alias string
	}{
		Name:  "pollVotes",
		Alias: "t",
	},
	Subscriber: struct {
		Name, Alias string
	}{
		Name:  "subscribers",
		Alias: "t",
	},
}

type Article struct {
	tableName struct{} `pg:"articles,alias:t,discard_unknown_columns"`

	ID            int       `pg:"id,pk"`
	Title         string    `pg:"title,use_zero"`
	Slug          string    `pg:"slug,use_zero"`
	Excerpt       *string   `pg:"excerpt"`
	Content       string    `pg:"content,use_zero"`
	FeaturedImage *string   `pg:"featuredImage"`
	CategoryID    *int      `pg:"categoryId"`
	AuthorID      *int      `pg:"authorId"`
	PublishedAt   time.Time `pg:"publishedAt"`
	ReadingTime   int       `pg:"readingTime,use_zero"`
	Views         int       `pg:"views,use_zero"`
	IsFeatured    bool      `pg:"isFeatured,use_zero"`
	IsBreaking    bool      `pg:"isBreaking,use_zero"`
	CreatedAt     time.Time `pg:"createdAt"`
	UpdatedAt     time.Time `pg:"updatedAt"`

	Category *Category `pg:"fk:categoryId,rel:has-one"`
	Author   *Author   `pg:"fk:authorId,rel:has-one"`
}

type ArticleLike struct {
	tableName struct{} `pg:"articleLikes,alias:t,discard_unknown_columns"`

	ID           int       `pg:"id,pk"`
	ArticleID    int       `pg:"articleId,use_zero"`
	SubscriberID int       `pg:"subscriberId,use_zero"`
	CreatedAt    time.Time `pg:"createdAt"`
}

type Author struct {
	tableName struct{} `pg:"authors,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	Name      string    `pg:"name,use_zero"`
	Bio       *string   `pg:"bio"`
	AvatarURL *string   `pg:"avatarUrl"`
	CreatedAt time.Time `pg:"createdAt"`
}

type Category struct {
	tableName struct{} `pg:"categories,alias:t,discard_unknown_columns"`

	ID          int       `pg:"id,pk"`
	Name        string    `pg:"name,use_zero"`
	Slug        string    `pg:"slug,use_zero"`
	Description *string   `pg:"description"`
	CreatedAt   time.Time `pg:"createdAt"`
}

type Comment struct {
	tableName struct{} `pg:"comments,alias:t,discard_unknown_columns"`

	ID           int       `pg:"id,pk"`
	ArticleID    int       `pg:"articleId,use_zero"`
	SubscriberID int       `pg:"subscriberId,use_zero"`
	Content      string    `pg:"content,use_zero"`
	IsApproved   bool      `pg:"isApproved,use_zero"`
	CreatedAt    time.Time `pg:"createdAt"`

	Article    *Article    `pg:"fk:articleId,rel:has-one"`
	Subscriber *Subscriber `pg:"fk:subscriberId,rel:has-one"`
}

type GooseDbVersion struct {
	tableName struct{} `pg:"goose_db_version,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	VersionID int64     `pg:"version_id,use_zero"`
	IsApplied bool      `pg:"is_applied,use_zero"`
	Tstamp    time.Time `pg:"tstamp,use_zero"`
}

type Poll struct {
	tableName struct{} `pg:"polls,alias:t,discard_unknown_columns"`

	ID          int        `pg:"id,pk"`
	Title       string     `pg:"title,use_zero"`
	Description *string    `pg:"description"`
	Type        string     `pg:"type,use_zero"`
	Status      string     `pg:"status,use_zero"`
	ShowResults bool       `pg:"showResults,use_zero"`
	EndDate     *time.Time `pg:"endDate"`
	CreatedAt   time.Time  `pg:"createdAt"`

	Options []PollOption `pg:"rel:has-many,join_fk:pollId"`
}

type PollOption struct {
	tableName struct{} `pg:"pollOptions,alias:t,discard_unknown_columns"`

	ID          int     `pg:"id,pk"`
	PollID      int     `pg:"pollId,use_zero"`
	Title       string  `pg:"title,use_zero"`
	Description *string `pg:"description"`
	ImageURL    *string `pg:"imageUrl"`
	VotesCount  int     `pg:"votesCount,use_zero"`
	OrderNumber int     `pg:"orderNumber,use_zero"`
}

type PollVote struct {
	tableName struct{} `pg:"pollVotes,alias:t,discard_unknown_columns"`

	ID        int       `pg:"id,pk"`
	PollID    int       `pg:"pollId,use_zero"`
	OptionID  int       `pg:"optionId,use_zero"`
	Phone     string    `pg:"phone,use_zero"`
	CreatedAt time.Time `pg:"createdAt"`
}

type Subscriber struct {
	tableName struct{} `pg:"subscribers,alias:t,discard_unknown_columns"`

	ID             int        `pg:"id,pk"`
	Email          string     `pg:"email,use_zero"`
	Name           *string    `pg:"name"`
	SubscribedAt   time.Time  `pg:"subscribedAt"`
	UnsubscribedAt *time.Time `pg:"unsubscribedAt"`
}
