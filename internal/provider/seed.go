package provider

import (
	"fmt"
	"math/rand"

	"github.com/pstuifzand/tui-contacts/internal/model"
)

var (
	givenNames = []string{
		"Ada", "Alan", "Barbara", "Brian", "Claude", "Dennis", "Edsger", "Frances",
		"Grace", "Hedy", "Ivan", "Joan", "Ken", "Linus", "Margaret", "Niklaus",
		"Olga", "Peter", "Radia", "Sophie", "Tim", "Ursula", "Vint", "Whitfield",
		"Xiaowei", "Yukihiro", "Zoe", "Émile", "Øystein",
	}
	familyNames = []string{
		"Allen", "Backus", "Cerf", "Dijkstra", "Engelbart", "Floyd", "Goldberg",
		"Hopper", "Iverson", "Jones", "Knuth", "Lamarr", "Lovelace", "McCarthy",
		"Naur", "Ousterhout", "Perlman", "Ritchie", "Shannon", "Thompson",
		"Ullman", "Wirth", "Yao", "Zuse",
	}
	phoneLabels = []string{"mobile", "home", "work"}
)

// GenerateOptions control GenerateAddressBook
type GenerateOptions struct {
	Contacts          int
	Directories       int
	DirectoryContacts int
	Profile           bool
	// Seed makes names and numbers reproducible
	Seed int64
}

// GenerateAddressBook creates random sample contacts, a profile and
// remote directories
func GenerateAddressBook(opts GenerateOptions) *model.AddressBook {
	rng := rand.New(rand.NewSource(opts.Seed))
	book := model.NewAddressBook()

	if opts.Profile {
		book.Profile = randomContact(rng)
	}
	for i := 0; i < opts.Contacts; i++ {
		c := randomContact(rng)
		c.Starred = rng.Intn(8) == 0
		c.Visible = rng.Intn(20) != 0
		c.AccountType = "local"
		c.AccountName = "phone"
		book.Contacts = append(book.Contacts, c)
	}
	// A few entries that sort under "#".
	for i := 0; i < opts.Contacts/25; i++ {
		c := model.NewContact(fmt.Sprintf("%d", 100+i), "Pizza")
		c.AddPhone(randomNumber(rng), "work")
		book.Contacts = append(book.Contacts, c)
	}

	for d := 0; d < opts.Directories; d++ {
		dir := &model.Directory{
			PackageName:     fmt.Sprintf("org.example.directory%d", d+1),
			TypeLabel:       "Corporate",
			DisplayName:     fmt.Sprintf("directory%d.example.org", d+1),
			PhotoSupport:    1,
			ShortcutSupport: 2,
		}
		for i := 0; i < opts.DirectoryContacts; i++ {
			dir.Contacts = append(dir.Contacts, randomContact(rng))
		}
		book.Directories = append(book.Directories, dir)
	}
	return book
}

func randomContact(rng *rand.Rand) *model.Contact {
	c := model.NewContact(givenNames[rng.Intn(len(givenNames))], familyNames[rng.Intn(len(familyNames))])
	for i := rng.Intn(3); i > 0; i-- {
		c.AddPhone(randomNumber(rng), phoneLabels[rng.Intn(len(phoneLabels))])
	}
	return c
}

func randomNumber(rng *rand.Rand) string {
	return fmt.Sprintf("+31 6 %04d %04d", rng.Intn(10000), rng.Intn(10000))
}
