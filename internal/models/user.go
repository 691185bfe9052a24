package models

// Principal - владелец токена: исполнитель или талант
type Principal struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
	Role  Role   `json:"userType"`
}

func (p *ServiceProvider) Principal() Principal {
	return Principal{ID: p.ID, Email: p.Email, Name: p.Name, Phone: p.Phone, Role: RoleProvider}
}

func (t *Talent) Principal() Principal {
	return Principal{ID: t.ID, Email: t.Email, Name: t.Name, Phone: t.Phone, Role: RoleTalent}
}
