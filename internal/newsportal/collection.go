package newsportal

import "github.com/daniilsolovey/news-publisher/internal/db"

type (
	Articles    []Article
	Categories  []Category
	Authors     []Author
	Comments    []Comment
	Subscribers []Subscriber
	Polls       []Poll
)

func NewArticles(in []db.Article) Articles {
	out := make(Articles, len(in))
	for i := range in {
		out[i] = *NewArticle(&in[i])
	}
	return out
}

func NewCategories(in []db.Category) Categories {
	out := make(Categories, len(in))
	for i := range in {
		out[i] = *NewCategory(&in[i])
	}
	return out
}

func NewAuthors(in []db.Author) Authors {
	out := make(Authors, len(in))
	for i := range in {
		out[i] = *NewAuthor(&in[i])
	}
	return out
}

func NewComments(in []db.Comment) Comments {
	out := make(Comments, len(in))
	for i := range in {
		out[i] = *NewComment(&in[i])
	}
	return out
}

func NewSubscribers(in []db.Subscriber) Subscribers {
	out := make(Subscribers, len(in))
	for i := range in {
		out[i] = *NewSubscriber(&in[i])
	}
	return out
}

func NewPolls(in []db.Poll) Polls {
	out := make(Polls, len(in))
	for i := range in {
		out[i] = *NewPoll(&in[i])
	}
	return out
}

func (ll Articles) IDs() []int {
	ids := make([]int, len(ll))
	for i := range ll {
		ids[i] = ll[i].ID
	}
	return ids
}
