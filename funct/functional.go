package funct

func Map[T any, R any](slide []T, transformer func(x T) (R, error)) ([]R, error) {
	newSlide := make([]R, 0, len(slide))
	for _, v := range slide {
		newValue, err := transformer(v)
		if err != nil {
			return nil, err
		}
		newSlide = append(newSlide, newValue)
	}
	return newSlide, nil
}

func Index[T any](slide []T, cond func(x T) bool) int {
	for i, v := range slide {
		if cond(v) {
			return i
		}
	}
	return -1
}

func Some[T any](slide []T, cond func(x T) bool) bool {
	return Index(slide, cond) != -1
}
