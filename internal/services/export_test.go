package services

func DummyHash(s *AuthService) []byte { return s.dummyHash }

func BcryptCost(s *UserService) int { return s.bcryptCost }
