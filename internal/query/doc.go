// Package query реализует слой удалённых процедур, через который страница
// читает данные: роутер именованных процедур, клиент с кэшем результатов и
// сериализуемое состояние кэша для передачи от генерации к рендеру (гидратация).
package query
