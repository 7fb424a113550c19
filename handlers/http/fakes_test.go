package httpHandler

import (
	"kb-server/entities"
)

type memUserRepo struct {
	users map[string]*entities.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*entities.User)}
}

func (m *memUserRepo) Create(user *entities.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Email
	}
	m.users[user.Email] = user
	return nil
}

func (m *memUserRepo) FindByEmail(email string) (*entities.User, error) {
	return m.users[email], nil
}

func (m *memUserRepo) FindByID(id string) (*entities.User, error) {
	for _, u := range m.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, nil
}

func (m *memUserRepo) ExistsByEmail(email string) (bool, error) {
	_, ok := m.users[email]
	return ok, nil
}
