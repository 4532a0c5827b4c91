package store

import (
	"strings"

	"github.com/ttpu/sports-equipment-portal-zplay800/internal/errors"
)

// Key prefixes for catalog storage.
// Badger iterates keys in byte order, so every index below yields its members
// in ascending lexicographic order without a separate sort.
const (
	activityPrefix           = "activity:"                // activity:{name} → Activity JSON
	categoryPrefix           = "category:"                // category:{name} → Category JSON
	productPrefix            = "product:"                 // product:{name} → Product JSON
	ratingPrefix             = "rating:"                  // rating:{product}\x00{user} → Rating JSON
	activityCategoriesPrefix = "idx:activity:categories:" // idx:activity:categories:{activity}\x00{category} → empty
	activityProductsPrefix   = "idx:activity:products:"   // idx:activity:products:{activity}\x00{product} → empty
	categoryProductsPrefix   = "idx:category:products:"   // idx:category:products:{category}\x00{product} → empty
)

// keySep separates the owner from the member in compound keys. NUL sorts
// below every other byte, so an owner's members stay contiguous even when
// one name is a prefix of another ("Run" vs "Running").
const keySep = "\x00"

// checkNames rejects any name containing keySep. Such a name would split
// at the wrong place inside a compound key and alias another owner's members.
func checkNames(kind string, names ...string) error {
	for _, name := range names {
		if strings.Contains(name, keySep) {
			return errors.InvalidNamef("Invalid %s name: %q", kind, name)
		}
	}
	return nil
}

func activityKey(name string) []byte {
	return []byte(activityPrefix + name)
}

func categoryKey(name string) []byte {
	return []byte(categoryPrefix + name)
}

func productKey(name string) []byte {
	return []byte(productPrefix + name)
}

// memberKey builds prefix + owner + sep + member.
func memberKey(prefix, owner, member string) []byte {
	return []byte(prefix + owner + keySep + member)
}

// memberScan builds the scan prefix for every member of owner.
func memberScan(prefix, owner string) []byte {
	return []byte(prefix + owner + keySep)
}
