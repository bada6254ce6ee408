package slip

import (
	"encoding/csv"
	"strings"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("ExportCSV", func() {
	var (
		store *mockStore
		data  []byte
		err   error
	)

	BeforeEach(func() {
		store = newMockStore()
	})

	JustBeforeEach(func() {
		data, err = ExportCSV(store, "2026-08-30", "operator")
	})

	When("the ledger has records for the date", func() {
		BeforeEach(func() {
			Expect(store.Insert(&Record{
				Date:        "2026-08-30",
				ATMID:       101,
				UserID:      "operator",
				Name:        "Main Street",
				Hundred:     intPtr(2000),
				TwoHundred:  nil,
				FiveHundred: intPtr(2500),
				CreatedAt:   time.Date(2026, 8, 30, 18, 30, 0, 0, time.UTC),
			})).To(Succeed())
		})

		It("should not return an error", func() {
			Expect(err).NotTo(HaveOccurred())
		})

		It("writes a header row", func() {
			rows, parseErr := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			Expect(parseErr).NotTo(HaveOccurred())
			Expect(rows[0]).To(Equal([]string{"date", "atm_id", "name", "hundred", "two_hundred", "five_hundred", "total"}))
		})

		It("leaves absent figures blank but counts them as zero in the total", func() {
			rows, parseErr := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			Expect(parseErr).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(2))
			Expect(rows[1]).To(Equal([]string{"2026-08-30", "101", "Main Street", "2000", "", "2500", "4500"}))
		})

		It("does not leak the user id or an internal row id", func() {
			Expect(string(data)).NotTo(ContainSubstring("operator"))
			Expect(string(data)).NotTo(ContainSubstring("user_id"))
		})
	})

	When("the ledger is empty for the date", func() {
		It("produces only the header row", func() {
			Expect(err).NotTo(HaveOccurred())
			rows, parseErr := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			Expect(parseErr).NotTo(HaveOccurred())
			Expect(rows).To(HaveLen(1))
		})
	})

	When("a branch name contains a comma", func() {
		BeforeEach(func() {
			Expect(store.Insert(&Record{
				Date:    "2026-08-30",
				ATMID:   102,
				UserID:  "operator",
				Name:    "Main Street, East Wing",
				Hundred: intPtr(100),
			})).To(Succeed())
		})

		It("quotes the field so the row still parses", func() {
			rows, parseErr := csv.NewReader(strings.NewReader(string(data))).ReadAll()
			Expect(parseErr).NotTo(HaveOccurred())
			Expect(rows[1][2]).To(Equal("Main Street, East Wing"))
		})
	})
})
