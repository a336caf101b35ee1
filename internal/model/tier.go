package model

// Stock tier names created by the seed migration. Tiers are reference data:
// any number of custom tiers may exist beside these.
const (
	TierBasic      = "Basic"
	TierPremium    = "Premium"
	TierEnterprise = "Enterprise"
)

// AccountTier bundles the permissions granted to a user: which thumbnail
// sizes are visible, whether originals are stored at full resolution and
// whether expiring links may be issued. The three axes combine freely.
type AccountTier struct {
	ID                string `db:"id"`
	Name              string `db:"name"`
	OriginalSize      bool   `db:"original_size"`
	FetchURL          bool   `db:"fetch_url"`
	ExposesThumbnails bool   `db:"exposes_thumbnails"`

	// Granted thumbnail sizes in pixels, loaded via the join table
	Sizes []int `db:"-"`
}

// All policy queries are nil-receiver safe and fail closed: a user without
// an assigned tier has no permissions.

func (t *AccountTier) GrantedThumbnailSizes() []int {
	if t == nil {
		return nil
	}
	return t.Sizes
}

func (t *AccountTier) CanStoreOriginal() bool {
	return t != nil && t.OriginalSize
}

func (t *AccountTier) CanIssueLinks() bool {
	return t != nil && t.FetchURL
}

// ShowsThumbnails reports whether derived sizes appear in representations at
// all. Entry-level tiers keep this false even when configured with sizes.
func (t *AccountTier) ShowsThumbnails() bool {
	return t != nil && t.ExposesThumbnails
}
