package slip

import (
	"path/filepath"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

// storeContract runs the Store behavior shared by both ledger
// implementations.
func storeContract(open func() Store) {
	var (
		store  Store
		record *Record
	)

	BeforeEach(func() {
		store = open()
		record = &Record{
			Date:        "2026-08-30",
			ATMID:       101,
			UserID:      "operator",
			Name:        "Main Street",
			Hundred:     intPtr(2000),
			TwoHundred:  intPtr(0),
			FiveHundred: intPtr(2500),
			CreatedAt:   time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC),
		}
	})

	AfterEach(func() {
		if store != nil {
			store.Close()
		}
	})

	Describe("Insert", func() {
		It("stores a new record", func() {
			Expect(store.Insert(record)).To(Succeed())
			exists, err := store.Exists("2026-08-30", 101, "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeTrue())
		})

		It("rejects a duplicate key with ErrDuplicate", func() {
			Expect(store.Insert(record)).To(Succeed())
			err := store.Insert(record)
			Expect(err).To(MatchError(ErrDuplicate))
		})

		It("keeps the first record's values on a duplicate attempt", func() {
			Expect(store.Insert(record)).To(Succeed())
			altered := *record
			altered.Hundred = intPtr(9999)
			Expect(store.Insert(&altered)).To(MatchError(ErrDuplicate))

			records, err := store.List("2026-08-30", "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].Hundred).To(HaveValue(Equal(2000)))
		})

		It("allows the same ATM on a different date", func() {
			Expect(store.Insert(record)).To(Succeed())
			other := *record
			other.Date = "2026-08-31"
			Expect(store.Insert(&other)).To(Succeed())
		})

		It("allows the same key for a different user", func() {
			Expect(store.Insert(record)).To(Succeed())
			other := *record
			other.UserID = "auditor"
			Expect(store.Insert(&other)).To(Succeed())
		})

		It("round-trips absent denomination figures as nil", func() {
			record.TwoHundred = nil
			Expect(store.Insert(record)).To(Succeed())

			records, err := store.List("2026-08-30", "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(1))
			Expect(records[0].TwoHundred).To(BeNil())
			Expect(records[0].Hundred).To(HaveValue(Equal(2000)))
		})
	})

	Describe("Exists", func() {
		It("reports false for an unknown key", func() {
			exists, err := store.Exists("2026-08-30", 999, "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(exists).To(BeFalse())
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			Expect(store.Insert(record)).To(Succeed())

			other := *record
			other.ATMID = 102
			other.Name = "High Street"
			Expect(store.Insert(&other)).To(Succeed())

			offDate := *record
			offDate.Date = "2026-08-29"
			Expect(store.Insert(&offDate)).To(Succeed())

			offUser := *record
			offUser.UserID = "auditor"
			Expect(store.Insert(&offUser)).To(Succeed())
		})

		It("returns only records for the date and user", func() {
			records, err := store.List("2026-08-30", "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(HaveLen(2))
			for _, r := range records {
				Expect(r.Date).To(Equal("2026-08-30"))
				Expect(r.UserID).To(Equal("operator"))
			}
		})

		It("returns an empty slice for a date with no records", func() {
			records, err := store.List("2026-01-01", "operator")
			Expect(err).NotTo(HaveOccurred())
			Expect(records).To(BeEmpty())
		})
	})
}

var _ = Describe("BoltDB", func() {
	storeContract(func() Store {
		path := filepath.Join(GinkgoT().TempDir(), "test.db")
		store, err := NewBoltDB(path)
		Expect(err).NotTo(HaveOccurred())
		return store
	})
})
