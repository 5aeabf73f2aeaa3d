package service

// sampleSeedName marks the sample posts as applied in the seed ledger.
const sampleSeedName = "sample_posts"

type samplePost struct {
	Category string
	Title    string
	Content  string
}

var samplePosts = []samplePost{
	{
		Category: "General",
		Title:    "Welcome to the forum",
		Content:  "This is the place for **general chat**. Say hello and tell us what brought you here.",
	},
	{
		Category: "General",
		Title:    "House rules",
		Content:  "Be kind, stay on topic within a category, and use *Off-topic* for everything else.",
	},
	{
		Category: "Technology",
		Title:    "What editor do you use?",
		Content:  "Vim, Emacs, VS Code, something else? Share your setup and your favourite plugins.",
	},
	{
		Category: "Gaming",
		Title:    "Currently playing",
		Content:  "Post what you are playing this week and whether you would recommend it.",
	},
	{
		Category: "Music",
		Title:    "Album of the month",
		Content:  "Nominate one album you had on repeat this month. One line on why.",
	},
	{
		Category: "Off-topic",
		Title:    "Coffee or tea?",
		Content:  "The eternal question.",
	},
}
