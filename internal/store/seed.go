package store

// SeedDemoData populates a fresh store with the demo user and a sample
// conversation so the frontend has something to render on first boot.
// It returns the demo user.
func (s *MemStore) SeedDemoData() *User {
	user := s.CreateUser("demo_user", "demo@example.com")

	conv := s.CreateConversation(user.ID, DefaultTitle)
	s.CreateMessage(conv.ID, RoleUser, "Crude apa saja yang diolah pada bulan Mei 2025 ?")
	s.CreateMessage(conv.ID, RoleAssistant, "Pada bulan Mei 2025, unit pengolahan di Kilang Cilacap...")

	return user
}
