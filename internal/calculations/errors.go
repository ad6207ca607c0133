package calculations

import "errors"

var (
	// ErrInvalidParameter возвращается при нарушении контракта: отрицательная
	// сумма, срок ≤ 0, ставка с неопределенным членом (1 + r ≤ 0), бесконечные
	// значения, неизвестные режим, тип фонда или слэб.
	ErrInvalidParameter = errors.New("calculations: недопустимый параметр")

	// ErrDegenerateInput возвращается для фазового расчета без фазы инвестирования.
	// Ошибка не фатальна: вызывающая сторона должна запросить данные повторно.
	ErrDegenerateInput = errors.New("calculations: вырожденные входные данные")
)
