package broadcast

import "sort"

type intSet map[int]struct{}

func (s intSet) add(v int) {
	s[v] = struct{}{}
}

func (s intSet) addAll(vs []int) {
	for _, v := range vs {
		s[v] = struct{}{}
	}
}

func (s intSet) contains(v int) bool {
	_, ok := s[v]
	return ok
}

// sorted returns the values of s in ascending order, never nil.
func (s intSet) sorted() []int {
	res := make([]int, 0, len(s))
	for v := range s {
		res = append(res, v)
	}
	sort.Ints(res)
	return res
}
