// backend-go/internal/config/constants.go
package config

import "regexp"

// Limits controls how many entries the top-N lists keep. Tunable data, not
// behavior: the aggregator takes these as input.
type Limits struct {
	TopItems     int
	TopExpensive int
	TopBooks     int
}

// DefaultLimits matches the display limits the exploration UI was built around.
var DefaultLimits = Limits{
	TopItems:     5,
	TopExpensive: 10,
	TopBooks:     5,
}

// MonthsFull indexes month names by time.Month-1.
var MonthsFull = [12]string{
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// DaysFull indexes weekday names by time.Weekday (0 = Sunday).
var DaysFull = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

// BookPublishers is the allow-list of known book and audiobook publishers.
// Matched as lowercase substrings against the order's publisher field.
var BookPublishers = []string{
	"penguin", "random house", "hachette", "harpercollins", "simon & schuster",
	"macmillan", "scholastic", "audible", "brilliance audio", "blackstone",
	"recorded books", "tantor", "harlequin", "kensington", "sourcebooks",
	"tor", "del rey", "ace", "orbit", "berkley", "dutton", "putnam", "viking",
	"bantam", "doubleday", "knopf", "crown", "ballantine", "anchor", "vintage",
	"little, brown", "grand central", "st. martin", "minotaur", "flatiron",
	"bloomsbury", "wiley", "o'reilly", "pearson", "mcgraw-hill",
	"cambridge university press", "oxford university press", "mit press",
	"chronicle books", "hay house", "sounds true",
}

// GenericPublishers are publisher strings that carry no signal and must never
// trigger the allow-list. Compared lowercase, exact.
var GenericPublishers = []string{
	"vendor details not available",
	"amazon.com services, inc",
	"amazon.com services, inc.",
}

// SubscriptionExclusions veto book classification outright, before the
// publisher check. Subscriptions are sold by book publishers too.
var SubscriptionExclusions = []string{
	"membership", "subscription", "unlimited", "prime", "audible plus",
	"kindle unlimited", "gold member", "platinum member", "trial", "renewal",
	"monthly plan", "annual plan",
}

// ProductExclusions mark product names that are definitely not books.
var ProductExclusions = []string{
	"water bottle", "bottle", "tumbler", "mug", "cup",
	"phone case", "cable", "charger", "adapter", "battery", "headphone",
	"speaker", "keyboard", "mouse", "monitor", "laptop", "tablet case",
	"screen protector", "stylus", "holder", "stand", "mount", "bracket",
	"shelf", "organizer", "storage", "container", "bag", "backpack", "wallet",
	"watch", "clock", "lamp", "light", "bulb", "tool", "screwdriver", "wrench",
	"drill", "tape", "glue", "paint", "brush", "cleaner", "soap", "shampoo",
	"lotion", "cream", "vitamin", "supplement", "protein", "snack", "food",
	"coffee", "tea", "rice", "spices", "spice", "seasoning", "flour", "sugar",
	"salt", "cooking", "meals", "lbs)", "oz)", "kg)", "shirt", "t-shirt",
	"pants", "shorts", "dress", "jacket", "coat", "shoes", "socks", "underwear",
	"toy", "game", "puzzle", "lego", "figure", "doll", "pet", "dog", "cat",
	"fish", "bird", "plant", "seed", "garden", "furniture", "mattress", "pillow",
	"blanket", "towel", "curtain", "rug", "mat", "simple modern",
}

// StrongBookIndicators are almost certainly books.
var StrongBookIndicators = []string{
	"kindle edition", "paperback", "hardcover", "hardback", "audiobook",
	"audible", "(book", "book)", "novel", "ebook", "e-book", "mass market",
	"library binding", "board book", "spiral-bound", "leather bound",
}

// MediumBookIndicators are literary-genre terms checked last.
var MediumBookIndicators = []string{
	"memoir", "biography", "autobiography", "anthology", "novella",
	"short stories", "poetry", "poems", "textbook", "workbook", "handbook",
	"guide to", "manual", "cookbook", "recipe book", "100 recipes",
	"101 recipes", "recipes for",
}

// Series-title patterns, e.g. "Book 2" or "Title (Series Book 1)".
var (
	BookSeriesPattern      = regexp.MustCompile(`(?i)book\s*\d+`)
	BookSeriesParenPattern = regexp.MustCompile(`(?i)\(.*book\s*\d+.*\)`)
)

// CurrencyHeaderCandidates is the ordered list of header spellings probed for
// a row's currency code across the three export schemas.
var CurrencyHeaderCandidates = []string{
	"Currency", "currency", "Currency Code", "CurrencyCode", "Ordering Currency Code",
}

// DefaultCurrency is assumed when an export omits currency columns.
const DefaultCurrency = "USD"
