package queries

import (
	"sort"
	"strings"

	"github.com/pkg/errors"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/JosLopes/LI3-sub000/database"
	"github.com/JosLopes/LI3-sub000/output"
	"github.com/JosLopes/LI3-sub000/query"
)

// namePrefixArguments carries the name prefix of a Q09 query.
type namePrefixArguments struct {
	prefix string
}

func namePrefixDefinition() *query.Definition {
	return &query.Definition{
		Code:           9,
		ParseArguments: parseNamePrefixArguments,
		CloneArguments: func(args query.Arguments) query.Arguments {
			clone := *args.(*namePrefixArguments)
			return &clone
		},
		GenerateStatistics: generateNamePrefixStatistics,
		Execute:            executeNamePrefix,
	}
}

func parseNamePrefixArguments(args []string) (query.Arguments, error) {
	if len(args) != 1 || args[0] == "" {
		return nil, errors.New("name search takes one non-empty prefix")
	}
	return &namePrefixArguments{prefix: args[0]}, nil
}

func generateNamePrefixStatistics(
	db *database.Database, instances []*query.Instance,
) (query.Statistics, error) {
	results := map[string][]*database.User{}
	for _, instance := range instances {
		results[instance.Args.(*namePrefixArguments).prefix] = nil
	}

	prefixes := make([]string, 0, len(results))
	for prefix := range results {
		prefixes = append(prefixes, prefix)
	}
	sort.Strings(prefixes)

	for u := range db.Users().All() {
		if !u.Status.Active() {
			continue
		}
		// Prefixes are byte-sorted, so once one compares greater than the
		// name's head the remaining ones do too.
		for _, prefix := range prefixes {
			if strings.HasPrefix(u.Name, prefix) {
				results[prefix] = append(results[prefix], u)
			} else if comparePrefix(prefix, u.Name) > 0 {
				break
			}
		}
	}

	collator := collate.New(language.AmericanEnglish)
	for _, users := range results {
		sort.Slice(users, func(i, j int) bool {
			if c := collator.CompareString(users[i].Name, users[j].Name); c != 0 {
				return c < 0
			}
			return users[i].ID < users[j].ID
		})
	}
	return results, nil
}

func executeNamePrefix(
	_ *database.Database, stats query.Statistics, instance *query.Instance, w output.Writer,
) error {
	args := instance.Args.(*namePrefixArguments)
	users, ok := stats.(map[string][]*database.User)[args.prefix]
	if !ok {
		return errors.Errorf("no statistics prepared for prefix %q", args.prefix)
	}

	for _, u := range users {
		w.NewObject()
		w.NewField("id", "%s", u.ID)
		w.NewField("name", "%s", u.Name)
	}
	return nil
}

// comparePrefix compares the prefix against the head of the name, byte-wise,
// like strncmp(prefix, name, len(prefix)).
func comparePrefix(prefix, name string) int {
	head := name
	if len(prefix) < len(head) {
		head = head[:len(prefix)]
	}
	return strings.Compare(prefix, head)
}
