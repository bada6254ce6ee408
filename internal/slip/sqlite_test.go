package slip

import (
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("SQLiteDB", func() {
	storeContract(func() Store {
		path := filepath.Join(GinkgoT().TempDir(), "test.sqlite")
		store, err := NewSQLiteDB(path)
		Expect(err).NotTo(HaveOccurred())
		return store
	})

	It("reopens an existing ledger without losing records", func() {
		path := filepath.Join(GinkgoT().TempDir(), "test.sqlite")
		store, err := NewSQLiteDB(path)
		Expect(err).NotTo(HaveOccurred())
		Expect(store.Insert(&Record{Date: "2026-08-30", ATMID: 101, Name: "Main Street"})).To(Succeed())
		Expect(store.Close()).To(Succeed())

		reopened, err := NewSQLiteDB(path)
		Expect(err).NotTo(HaveOccurred())
		defer reopened.Close()
		exists, err := reopened.Exists("2026-08-30", 101, "")
		Expect(err).NotTo(HaveOccurred())
		Expect(exists).To(BeTrue())
	})
})
