package plantuml_test

import (
	"fmt"

	"github.com/matzehuels/umlpad/pkg/plantuml"
)

func ExampleEncode64() {
	fmt.Println(plantuml.Encode64([]byte("Man")))
	fmt.Println(plantuml.Encode64([]byte("Ma")))
	fmt.Println(plantuml.Encode64([]byte{0xFF, 0x00, 0x00}))
	// Output:
	// JM5k
	// JM40
	// _m00
}

func ExampleExtractEntities() {
	src := "@startuml\nactor User\nparticipant \"Order Service\"\nclass Invoice\n@enduml"
	fmt.Println(plantuml.ExtractEntities(src))
	// Output: [Invoice Order Service User]
}
